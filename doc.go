// Package remat post-processes glTF mesh documents for game asset pipelines.
//
// Exporters are sloppy about material identity: a record named "SteelPlate.001"
// and one stamped with an item_id extra both mean the same game material. remat
// opens a document in a session, normalizes every resolvable material against a
// catalog of game definitions, lets callers queue further transforms (scaling,
// metadata stamping, pruning) and finally saves the result as a self-contained
// .glb or a .gltf directory.
//
// The entry points are Open, FromBytes and New; everything else hangs off the
// returned Session. Observers subscribe to the session's event channel, which
// reports normalization counts, command execution and saves.
package remat
