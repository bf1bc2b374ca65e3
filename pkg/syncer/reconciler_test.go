package syncer

import (
	"testing"
	"time"
)

func conv(ids ...string) []Conversation {
	out := make([]Conversation, 0, len(ids))
	for _, id := range ids {
		out = append(out, Conversation{Id: id, Title: "Conversation " + id, Platform: "chatgpt"})
	}
	return out
}

func folderIds(folders []Folder) []string {
	out := make([]string, 0, len(folders))
	for _, f := range folders {
		out = append(out, f.Id)
	}
	return out
}

func convIds(conversations []Conversation) []string {
	out := make([]string, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, c.Id)
	}
	return out
}

func equalIds(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name           string
		remote         []Folder
		local          []Folder
		wantFolderIds  []string
		wantConvByHash map[string][]string
	}{
		{
			name:          "both empty",
			remote:        nil,
			local:         nil,
			wantFolderIds: []string{},
		},
		{
			name:          "remote only",
			remote:        []Folder{{Id: "a"}, {Id: "b"}},
			local:         nil,
			wantFolderIds: []string{"a", "b"},
		},
		{
			name:          "local only folders survive",
			remote:        nil,
			local:         []Folder{{Id: "x"}, {Id: "y"}},
			wantFolderIds: []string{"x", "y"},
		},
		{
			name:          "remote order first, then local-only in local order",
			remote:        []Folder{{Id: "a"}, {Id: "b"}},
			local:         []Folder{{Id: "b"}, {Id: "c"}},
			wantFolderIds: []string{"a", "b", "c"},
		},
		{
			name:          "duplicate remote ids collapse",
			remote:        []Folder{{Id: "a"}, {Id: "a"}, {Id: "b"}},
			local:         nil,
			wantFolderIds: []string{"a", "b"},
		},
		{
			name: "conversation union keeps remote order then local extras",
			remote: []Folder{
				{Id: "a", Conversations: conv("c1", "c2")},
			},
			local: []Folder{
				{Id: "a", Conversations: conv("c2", "c3")},
			},
			wantFolderIds: []string{"a"},
			wantConvByHash: map[string][]string{
				"a": {"c1", "c2", "c3"},
			},
		},
		{
			name: "duplicate conversations within one side collapse",
			remote: []Folder{
				{Id: "a", Conversations: conv("c1", "c1", "c2")},
			},
			local:         nil,
			wantFolderIds: []string{"a"},
			wantConvByHash: map[string][]string{
				"a": {"c1", "c2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.remote, tt.local)

			if !equalIds(folderIds(got), tt.wantFolderIds) {
				t.Errorf("folder ids = %v, want %v", folderIds(got), tt.wantFolderIds)
			}

			for _, f := range got {
				want, ok := tt.wantConvByHash[f.Id]
				if !ok {
					continue
				}
				if !equalIds(convIds(f.Conversations), want) {
					t.Errorf("folder %s conversations = %v, want %v", f.Id, convIds(f.Conversations), want)
				}
			}
		})
	}
}

func TestMergeRemoteWinsOnMetadata(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	remote := []Folder{{Id: "a", Name: "Work", Emoji: "💼", CreatedAt: createdAt}}
	local := []Folder{{Id: "a", Name: "Old Name", Emoji: "📁"}}

	got := Merge(remote, local)

	if len(got) != 1 {
		t.Fatalf("merged folder count = %d, want 1", len(got))
	}
	if got[0].Name != "Work" || got[0].Emoji != "💼" {
		t.Errorf("metadata = (%q, %q), want remote values (%q, %q)", got[0].Name, got[0].Emoji, "Work", "💼")
	}
	if !got[0].CreatedAt.Equal(createdAt) {
		t.Errorf("created at = %v, want %v", got[0].CreatedAt, createdAt)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	remote := []Folder{
		{Id: "a", Name: "Work", Conversations: conv("c1", "c2")},
		{Id: "b", Name: "Personal", Conversations: conv("c3")},
	}
	local := []Folder{
		{Id: "b", Name: "Personal (stale)", Conversations: conv("c3", "c4")},
		{Id: "c", Name: "Local Only", Conversations: conv("c5")},
	}

	once := Merge(remote, local)
	twice := Merge(once, once)

	if !equalIds(folderIds(once), folderIds(twice)) {
		t.Fatalf("folder ids changed on re-merge: %v -> %v", folderIds(once), folderIds(twice))
	}
	for i := range once {
		if !equalIds(convIds(once[i].Conversations), convIds(twice[i].Conversations)) {
			t.Errorf("folder %s conversations changed on re-merge: %v -> %v",
				once[i].Id, convIds(once[i].Conversations), convIds(twice[i].Conversations))
		}
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	remote := []Folder{{Id: "a", Conversations: conv("c1")}}
	local := []Folder{{Id: "a", Conversations: conv("c2")}}

	_ = Merge(remote, local)

	if len(remote[0].Conversations) != 1 || len(local[0].Conversations) != 1 {
		t.Errorf("inputs mutated: remote has %d conversations, local has %d",
			len(remote[0].Conversations), len(local[0].Conversations))
	}
}
