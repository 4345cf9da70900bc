package room

import (
	"time"

	"github.com/variantgo/server/game/board"
	"github.com/variantgo/server/game/play"
)

// Room wraps one live play.SharedState with the metadata a server needs
// around it.
type Room struct {
	ID             string
	TemplateID     string
	Shared         *play.SharedState
	Members        []uint64
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// ViewSeat is the wire form of a play.Seat.
type ViewSeat struct {
	Player *uint64 `json:"player,omitempty"`
	Team   uint8   `json:"team"`
}

// View is the flattened, read-only snapshot a room broadcasts to
// observers after every action: room metadata plus the board and
// visibility unrolled into wire-friendly flat slices.
type View struct {
	RoomID          string     `json:"room_id"`
	Members         []uint64   `json:"members"`
	Seats           []ViewSeat `json:"seats"`
	Turn            int        `json:"turn"`
	BoardCells      []byte     `json:"board"`
	BoardVisibility []uint16   `json:"board_visibility,omitempty"`
	Width           int        `json:"width"`
	Height          int        `json:"height"`
	Mods            play.Mods  `json:"mods"`
	Points          []int      `json:"points"`
	MoveNumber      int        `json:"move_number"`
}

// ToView flattens r into its wire snapshot, revealing only what team
// viewerTeam is allowed to see. A viewerTeam of 0 (no seat, or a
// spectator with full information) leaves the board untouched;
// otherwise stones hidden from viewerTeam are reported as empty.
func (r *Room) ToView(viewerTeam uint8) View {
	s := r.Shared

	cells := s.Board.Cells()
	boardCells := make([]byte, len(cells))
	for i, c := range cells {
		boardCells[i] = byte(c)
	}

	var visibility []uint16
	if s.Visibility != nil {
		masks := s.Visibility.Masks()
		visibility = make([]uint16, len(masks))
		for i, m := range masks {
			visibility[i] = uint16(m)
			if viewerTeam != 0 && m.Hides(board.Color(viewerTeam)) {
				boardCells[i] = 0
			}
		}
	}

	seats := make([]ViewSeat, len(s.Seats))
	for i, seat := range s.Seats {
		seats[i] = ViewSeat{Player: seat.Player, Team: uint8(seat.Team)}
	}

	return View{
		RoomID:          r.ID,
		Members:         append([]uint64(nil), r.Members...),
		Seats:           seats,
		Turn:            s.Turn,
		BoardCells:      boardCells,
		BoardVisibility: visibility,
		Width:           s.Board.Width,
		Height:          s.Board.Height,
		Mods:            s.Mods,
		Points:          append([]int(nil), s.Points...),
		MoveNumber:      len(s.History) - 1,
	}
}
