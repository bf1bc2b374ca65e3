package syncer

import "time"

// Folder and Conversation are the wire shapes exchanged with devices
// during a sync pass. Identifiers are the client-generated folder ids
// and platform conversation ids, so the merge works the same for rows
// that have never been persisted server-side.

type Conversation struct {
	Id         string    `json:"id"`
	Title      string    `json:"title"`
	Platform   string    `json:"platform"`
	OriginURL  string    `json:"origin_url"`
	CapturedAt time.Time `json:"captured_at"`
	// Folders this conversation is cross-filed under. Optional.
	FolderIds []string `json:"folder_ids,omitempty"`
}

type Folder struct {
	Id            string         `json:"id"`
	Name          string         `json:"name"`
	Emoji         string         `json:"emoji"`
	CreatedAt     time.Time      `json:"created_at"`
	Conversations []Conversation `json:"conversations"`
}

// Merge combines a remote and a local folder list into one list with no
// duplicate folder ids and no duplicate conversation ids within any
// folder. Remote wins on folder metadata; local-only conversations are
// appended after the remote ones, so nothing local is ever dropped.
// Output order: remote-derived folders in remote order, then local-only
// folders in local order.
//
// Merge is pure; the caller persists the result to both sides to
// converge them.
func Merge(remote, local []Folder) []Folder {
	localIdx := make(map[string]Folder, len(local))
	for _, f := range local {
		if _, ok := localIdx[f.Id]; !ok {
			localIdx[f.Id] = f
		}
	}

	merged := make([]Folder, 0, len(remote)+len(local))
	seen := make(map[string]struct{}, len(remote))

	for _, rf := range remote {
		if _, dup := seen[rf.Id]; dup {
			continue
		}
		seen[rf.Id] = struct{}{}

		out := rf
		if lf, ok := localIdx[rf.Id]; ok {
			out.Conversations = mergeConversations(rf.Conversations, lf.Conversations)
		} else {
			out.Conversations = mergeConversations(rf.Conversations, nil)
		}
		merged = append(merged, out)
	}

	for _, lf := range local {
		if _, ok := seen[lf.Id]; ok {
			continue
		}
		seen[lf.Id] = struct{}{}
		lf.Conversations = mergeConversations(lf.Conversations, nil)
		merged = append(merged, lf)
	}

	return merged
}

// mergeConversations returns primary followed by the secondary entries
// whose ids are absent from primary, deduplicated by id throughout.
func mergeConversations(primary, secondary []Conversation) []Conversation {
	out := make([]Conversation, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary))

	for _, c := range primary {
		if _, ok := seen[c.Id]; ok {
			continue
		}
		seen[c.Id] = struct{}{}
		out = append(out, c)
	}
	for _, c := range secondary {
		if _, ok := seen[c.Id]; ok {
			continue
		}
		seen[c.Id] = struct{}{}
		out = append(out, c)
	}
	return out
}
