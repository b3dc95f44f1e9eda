package vm

// Program version bounds supported by the compiler.
const (
	MinVersion     = 2
	MaxVersion     = 8
	DefaultVersion = 2
)
