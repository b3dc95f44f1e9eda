package vm

// Mode is a bit set of program execution modes. An opcode is available
// in a mode iff the corresponding bit is set in its mode mask.
type Mode uint8

const (
	// ModeSignature is the stateless mode, used for logic signatures.
	ModeSignature Mode = 1 << iota

	// ModeApplication is the stateful mode. Opcodes that read or write
	// persistent application state are available only in this mode.
	ModeApplication
)

// ModeAny marks opcodes available in every mode.
const ModeAny = ModeSignature | ModeApplication

func (m Mode) String() string {
	switch m {
	case ModeSignature:
		return "Signature"
	case ModeApplication:
		return "Application"
	case ModeAny:
		return "Any"
	}
	return "Invalid"
}
