package ability

// MessageSlot is where a custom message is used
type MessageSlot int

const (
	MsgToChar MessageSlot = iota
	MsgToVict
	MsgToRoom
	MsgFailToChar
	MsgFailToVict
	MsgFailToRoom
	MsgImmuneToChar
	MsgBeginToChar
	MsgBeginToRoom
	MsgTickToChar
	MsgTickToRoom
	MsgCancelToChar
	MsgWearOffToChar
	MsgWearOffToRoom
	MsgNoTarget
)

var slotNames = []string{
	"to-char",
	"to-vict",
	"to-room",
	"fail-to-char",
	"fail-to-vict",
	"fail-to-room",
	"immune-to-char",
	"begin-to-char",
	"begin-to-room",
	"tick-to-char",
	"tick-to-room",
	"cancel-to-char",
	"wear-off-to-char",
	"wear-off-to-room",
	"no-target",
}

func (s MessageSlot) String() string { return enumName(int(s), slotNames) }

func (s MessageSlot) MarshalJSON() ([]byte, error) { return marshalEnum(int(s), slotNames) }

func (s *MessageSlot) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, slotNames)
	if err != nil {
		return err
	}
	*s = MessageSlot(v)
	return nil
}

// CustomMessage is an authored template for a slot. Position orders the
// per-tick messages of an over-time ability and is 0 elsewhere.
type CustomMessage struct {
	Slot     MessageSlot `json:"slot"`
	Position int         `json:"position,omitempty"`
	Text     string      `json:"text"`
}
