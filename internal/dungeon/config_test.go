package dungeon

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestValidateRejectsSmallChunkSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkSize = 8
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected ConfigurationInvalid for chunk_size < 16")
	}
}

func TestValidateRejectsInvertedRoomRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoomsMin, cfg.RoomsMax = 5, 2
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected ConfigurationInvalid for inverted rooms range")
	}
}

func TestValidateRejectsBadTabletProb(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TabletProb = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected ConfigurationInvalid for tablet_prob > 1")
	}
}

func TestGenerationHashIsStableAndSensitive(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	if a.GenerationHash() != b.GenerationHash() {
		t.Fatal("identical configs should hash identically")
	}
	b.TabletsMax = a.TabletsMax + 1
	if a.GenerationHash() == b.GenerationHash() {
		t.Fatal("changing tablets_max should change the generation hash")
	}
}
