// Package domain contains the core value types shared across remat: material
// definitions, event payloads and error sentinels. It has no dependencies so
// that adapters and the engine can agree on vocabulary without coupling.
package domain
