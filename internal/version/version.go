package version

import (
	"fmt"
	"os"
)

const (
	Version = "0.3.0"
)

// HasVersionArg reports whether the first argument asks for the version
func HasVersionArg() bool {
	if len(os.Args) > 1 {
		arg := os.Args[1]
		return arg == "--version" || arg == "-version" || arg == "-v" || arg == "--v" || arg == "version"
	}
	return false
}

func String() string {
	return fmt.Sprintf("GoShiro v%s", Version)
}

func ShowVersion() {
	fmt.Println(String())
}
