package version

import (
	"fmt"

	"github.com/spf13/cobra"
	"speech-kit/docs"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stt-server",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("v" + docs.SwaggerInfo.Version)
	},
}
