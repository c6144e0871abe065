package httpapi

import "github.com/przecze/rooms-of-roaming/internal/dungeon"

// ChunkResponse is the §6.1 non-debug wire payload.
type ChunkResponse struct {
	Data []string `json:"data"`
}

// ChunkDebugResponse is the §6.1 debug wire payload.
type ChunkDebugResponse struct {
	Data  []string `json:"data"`
	Debug DebugInfo `json:"debug"`
}

// DebugInfo mirrors the debug object in §6.1, all durations truncated to
// whole milliseconds except the three scalar fields.
type DebugInfo struct {
	Alpha             float64  `json:"alpha"`
	Beta              float64  `json:"beta"`
	SpatialVariation  float64  `json:"spatial_variation"`
	GenerationTime    int64    `json:"generation_time"`
	Wavelengths       []string `json:"wavelengths"`
	Timings           Timings  `json:"timings"`
}

// Timings mirrors §6.1's nested timings object.
type Timings struct {
	Setup                int64 `json:"setup"`
	Init                 int64 `json:"init"`
	BoundaryCorridors    int64 `json:"boundary_corridors"`
	RoomGeneration       int64 `json:"room_generation"`
	RoomFloors           int64 `json:"room_floors"`
	RoomHallways         int64 `json:"room_hallways"`
	BoundaryConnections  int64 `json:"boundary_connections"`
	Total                int64 `json:"total"`
	TotalWithOverhead    int64 `json:"total_with_overhead"`
}

// newChunkResponse renders the non-debug response for a chunk.
func newChunkResponse(c *dungeon.Chunk) ChunkResponse {
	return ChunkResponse{Data: c.Rows()}
}

// newChunkDebugResponse renders the debug response. requestOverheadMS is
// the wall-clock time the HTTP layer spent around the (possibly
// cache-hit) facade call, reported as total_with_overhead alongside the
// generator's own total.
func newChunkDebugResponse(c *dungeon.Chunk, requestOverheadMS int64) ChunkDebugResponse {
	t := c.Timings
	return ChunkDebugResponse{
		Data: c.Rows(),
		Debug: DebugInfo{
			Alpha:            c.Wavelengths.Alpha,
			Beta:             c.Wavelengths.Beta,
			SpatialVariation: c.Wavelengths.SpatialVariation,
			GenerationTime:   c.GenerationMS,
			Wavelengths:      dungeon.DescribeWavelengths(c.Wavelengths),
			Timings: Timings{
				Setup:               t.Setup.Milliseconds(),
				Init:                t.Init.Milliseconds(),
				BoundaryCorridors:   t.BoundaryCorridors.Milliseconds(),
				RoomGeneration:      t.RoomGeneration.Milliseconds(),
				RoomFloors:          t.RoomFloors.Milliseconds(),
				RoomHallways:        t.RoomHallways.Milliseconds(),
				BoundaryConnections: t.BoundaryConnections.Milliseconds(),
				Total:               t.Total.Milliseconds(),
				TotalWithOverhead:   requestOverheadMS,
			},
		},
	}
}
