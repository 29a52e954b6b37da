package gateway

import "github.com/wordrush/wordrush/internal/game/room"

// clientEvent is the envelope for every inbound JSON message. Fields
// beyond Type are per-event; unused ones stay zero.
type clientEvent struct {
	Type     string           `json:"type"`
	RoomCode string           `json:"roomCode,omitempty"`
	Name     string           `json:"name,omitempty"`
	Word     string           `json:"word,omitempty"`
	PowerUp  string           `json:"powerUp,omitempty"`
	TargetID string           `json:"targetId,omitempty"`
	Settings *settingsPayload `json:"settings,omitempty"`
}

// settingsPayload is the partial-settings shape of update_settings. Nil
// fields are left untouched.
type settingsPayload struct {
	Rounds        *int    `json:"rounds,omitempty"`
	RoundSeconds  *int    `json:"roundSeconds,omitempty"`
	Mode          *string `json:"mode,omitempty"`
	MinWordLength *int    `json:"minWordLength,omitempty"`
	FullBonus     *bool   `json:"fullBonus,omitempty"`
	WordLength    *int    `json:"wordLength,omitempty"`
}

func (p *settingsPayload) patch() room.SettingsPatch {
	return room.SettingsPatch{
		Rounds:        p.Rounds,
		RoundSeconds:  p.RoundSeconds,
		Mode:          p.Mode,
		MinWordLength: p.MinWordLength,
		FullBonus:     p.FullBonus,
		WordLength:    p.WordLength,
	}
}

// serverEvent is the envelope for every outbound JSON message.
type serverEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// roomState is the full membership snapshot broadcast after any lobby
// mutation.
type roomState struct {
	Code     string        `json:"code"`
	HostID   string        `json:"hostId"`
	Phase    string        `json:"phase"`
	Players  []playerState `json:"players"`
	Settings settingsState `json:"settings"`
}

type playerState struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
	IsHost    bool   `json:"isHost"`
	IsReady   bool   `json:"isReady"`
	Score     int    `json:"score"`
	Freezes   int    `json:"freezes"`
	Burns     int    `json:"burns"`
}

type settingsState struct {
	Rounds        int    `json:"rounds"`
	RoundSeconds  int    `json:"roundSeconds"`
	Mode          string `json:"mode"`
	MinWordLength int    `json:"minWordLength"`
	FullBonus     bool   `json:"fullBonus"`
	WordLength    int    `json:"wordLength"`
}

// snapshotRoom renders the broadcastable view of a room.
func snapshotRoom(r *room.Room) roomState {
	settings := r.Settings()
	players := r.Players()
	state := roomState{
		Code:   r.Code,
		HostID: r.HostID(),
		Phase:  r.Phase().String(),
		Settings: settingsState{
			Rounds:        settings.Rounds,
			RoundSeconds:  settings.RoundSeconds,
			Mode:          settings.Mode.String(),
			MinWordLength: settings.MinWordLength,
			FullBonus:     settings.FullBonus,
			WordLength:    settings.WordLength,
		},
	}
	for _, p := range players {
		state.Players = append(state.Players, playerState{
			ID:        p.ID,
			Name:      p.Name,
			Connected: p.Connected,
			IsHost:    p.IsHost,
			IsReady:   p.IsReady,
			Score:     p.Score,
			Freezes:   p.Freezes,
			Burns:     p.Burns,
		})
	}
	return state
}
