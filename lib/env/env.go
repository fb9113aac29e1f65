package env

import (
	"os"
)

func Test() bool {
	return os.Getenv("TEST_MODE") != ""
}

func Dev() bool {
	return os.Getenv("DEV_MODE") != ""
}

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}
