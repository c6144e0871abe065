package dungeon

import "hash/fnv"

// Config holds the parameters from §6.3 that govern chunk generation. It is
// immutable once handed to a Generator: the generator's purity contract
// (I1) only holds if the configuration driving it never changes mid-flight.
type Config struct {
	WorldSeed uint64

	ChunkSize int // S

	RoomsMin, RoomsMax     int
	RoomWidthMin, RoomWidthMax   int
	RoomHeightMin, RoomHeightMax int

	OpeningsMin, OpeningsMax int

	PlacementAttempts int // T

	TabletProb float64
	TabletsMax int
}

// DefaultConfig returns the §6.3 defaults.
func DefaultConfig() Config {
	return Config{
		WorldSeed:         0x5ea7_1e55_c0ffee42,
		ChunkSize:         48,
		RoomsMin:          3,
		RoomsMax:          8,
		RoomWidthMin:      4,
		RoomWidthMax:      10,
		RoomHeightMin:     4,
		RoomHeightMax:     10,
		OpeningsMin:       1,
		OpeningsMax:       3,
		PlacementAttempts: 40,
		TabletProb:        0.15,
		TabletsMax:        3,
	}
}

// Validate reports the first §7 ConfigurationInvalid problem found, or nil.
func (c Config) Validate() error {
	switch {
	case c.ChunkSize < 16:
		return &ConfigurationInvalid{Field: "chunk_size", Reason: "must be >= 16"}
	case c.RoomsMin < 0 || c.RoomsMax < c.RoomsMin:
		return &ConfigurationInvalid{Field: "rooms_min/rooms_max", Reason: "inverted or negative range"}
	case c.RoomWidthMin < 2 || c.RoomWidthMax < c.RoomWidthMin:
		return &ConfigurationInvalid{Field: "room_w_min/room_w_max", Reason: "inverted or too small range"}
	case c.RoomHeightMin < 2 || c.RoomHeightMax < c.RoomHeightMin:
		return &ConfigurationInvalid{Field: "room_h_min/room_h_max", Reason: "inverted or too small range"}
	case c.OpeningsMin < 1 || c.OpeningsMax < c.OpeningsMin:
		return &ConfigurationInvalid{Field: "openings_min/openings_max", Reason: "inverted or less than 1"}
	case c.PlacementAttempts < 1:
		return &ConfigurationInvalid{Field: "placement_attempts", Reason: "must be >= 1"}
	case c.TabletProb < 0 || c.TabletProb > 1:
		return &ConfigurationInvalid{Field: "tablet_prob", Reason: "must be in [0,1]"}
	case c.TabletsMax < 0:
		return &ConfigurationInvalid{Field: "tablets_max", Reason: "must be >= 0"}
	case c.ChunkSize-2*3 < 2:
		// The interior region [2, S-3] must leave room for at least one cell;
		// below this the boundary stubs and the interior region collide.
		return &ConfigurationInvalid{Field: "chunk_size", Reason: "too small for a 2-cell interior margin"}
	}
	return nil
}

// GenerationHash summarizes the tuning fields (every field except
// WorldSeed) that determine where openings, rooms, and tablets land within
// a chunk; WorldSeed is not part of the hash. It resolves the §9 open question: the
// external tablet store versions its keys by this hash rather than by
// assuming the operator never changes tuning after going live.
func (c Config) GenerationHash() uint64 {
	h := fnv.New64a()
	write := func(v int64) {
		var buf [8]byte
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	write(int64(c.ChunkSize))
	write(int64(c.RoomsMin))
	write(int64(c.RoomsMax))
	write(int64(c.RoomWidthMin))
	write(int64(c.RoomWidthMax))
	write(int64(c.RoomHeightMin))
	write(int64(c.RoomHeightMax))
	write(int64(c.OpeningsMin))
	write(int64(c.OpeningsMax))
	write(int64(c.PlacementAttempts))
	write(int64(c.TabletProb * 1e6))
	write(int64(c.TabletsMax))
	return h.Sum64()
}
