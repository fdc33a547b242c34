package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Scan    bool
	Parse   bool
	Convert bool
	Encode  bool
	API     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("ZPARSE_DEBUG_SCAN")
	d.Parse = boolEnv("ZPARSE_DEBUG_PARSE")
	d.Convert = boolEnv("ZPARSE_DEBUG_CONVERT")
	d.Encode = boolEnv("ZPARSE_DEBUG_ENCODE")
	d.API = boolEnv("ZPARSE_DEBUG_API")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Parse() bool {
	return d.Parse
}
func Convert() bool {
	return d.Convert
}
func Encode() bool {
	return d.Encode
}
func API() bool {
	return d.API
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
