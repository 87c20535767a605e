package remat_test

import (
	"fmt"

	"github.com/aretw0/remat"
	"github.com/qmuntal/gltf"
)

func Example() {
	doc := gltf.NewDocument()
	doc.Materials = []*gltf.Material{
		{Name: "SteelPlate"},
		{Name: "BulletproofGlass"},
		{Name: "not_a_game_material"},
	}

	session, err := remat.New(doc)
	if err != nil {
		panic(err)
	}

	for _, pair := range session.Pairs() {
		fmt.Printf("%s -> %s\n", pair.Definition.ID, pair.Material.Name)
	}
	// Output:
	// SteelPlate -> Steel Plate
	// BulletproofGlass -> Bulletproof Glass
}
