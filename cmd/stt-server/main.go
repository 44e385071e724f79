package main

import (
	"speech-kit/cmd/stt-server/cmd"
)

func main() {
	cmd.Execute()
}
