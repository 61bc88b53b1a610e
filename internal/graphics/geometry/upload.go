package geometry

import (
	"fmt"

	"mini-voxel/internal/meshing"
	"mini-voxel/internal/world"
)

// FaceCommand is a draw command together with the face direction it draws.
type FaceCommand struct {
	Direction world.Direction
	Command   DrawCommand
}

// UploadMesh allocates and uploads one slot per non-empty direction of mesh
// and returns the resulting commands in direction order. Directions without
// quads get no command. On failure nothing is returned; slots reserved
// before the failure stay allocated, as the allocator never frees.
func UploadMesh(store *Store, pos world.ChunkPosition, mesh *meshing.Mesh) ([]FaceCommand, error) {
	if mesh == nil {
		return nil, nil
	}
	commands := make([]FaceCommand, 0, world.DirectionCount)
	for _, dir := range world.Directions {
		quads := mesh.Faces[dir]
		if len(quads) == 0 {
			continue
		}
		baseInstance, err := PackBaseInstance(pos, dir)
		if err != nil {
			return nil, err
		}
		slot, err := store.Allocate(uint32(len(quads)))
		if err != nil {
			return nil, fmt.Errorf("chunk %+v %v: %w", pos, dir, err)
		}
		if err := store.Upload(slot, quads); err != nil {
			return nil, fmt.Errorf("chunk %+v %v: %w", pos, dir, err)
		}
		commands = append(commands, FaceCommand{Direction: dir, Command: NewDrawCommand(slot, baseInstance)})
	}
	return commands, nil
}
