package limits

import "testing"

func TestAllowed(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		count int
		want  bool
	}{
		{"below limit", 3, 2, true},
		{"at limit blocks next addition", 3, 3, false},
		{"above limit", 3, 5, false},
		{"zero limit blocks everything", 0, 0, false},
		{"unlimited with zero count", Unlimited, 0, true},
		{"unlimited with huge count", Unlimited, 1_000_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.limit, tt.count); got != tt.want {
				t.Errorf("Allowed(%d, %d) = %v, want %v", tt.limit, tt.count, got, tt.want)
			}
		})
	}
}

func TestFreePlanFolderCeiling(t *testing.T) {
	// Free plan ships with three folders.
	const maxFolders = 3

	for count := 0; count < maxFolders; count++ {
		if !CanCreateFolder(maxFolders, count) {
			t.Errorf("CanCreateFolder(%d, %d) = false, want true", maxFolders, count)
		}
	}
	if CanCreateFolder(maxFolders, maxFolders) {
		t.Errorf("CanCreateFolder(%d, %d) = true, want false", maxFolders, maxFolders)
	}
}

func TestConversationCeiling(t *testing.T) {
	if !CanAddConversation(10, 9) {
		t.Error("CanAddConversation(10, 9) = false, want true")
	}
	if CanAddConversation(10, 10) {
		t.Error("CanAddConversation(10, 10) = true, want false")
	}
	if !CanAddConversation(Unlimited, 10) {
		t.Error("CanAddConversation(Unlimited, 10) = false, want true")
	}
}
