package driver

import (
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// terminalSize queries the terminal dimensions, trying the TIOCGWINSZ
// ioctl on the given fd first, then stderr, then the COLUMNS/LINES
// environment variables, falling back to 80x24.
func terminalSize(fd uintptr) (width, height int) {
	for _, f := range []uintptr{fd, os.Stderr.Fd()} {
		if ws, err := unix.IoctlGetWinsize(int(f), unix.TIOCGWINSZ); err == nil && ws.Col > 0 && ws.Row > 0 {
			return int(ws.Col), int(ws.Row)
		}
	}
	return envInt("COLUMNS", 80), envInt("LINES", 24)
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
