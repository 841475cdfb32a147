package cmd

import (
	"fmt"
	"strings"

	"quake-manager/feature/earthquake/country"

	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [location]",
	Short: "Resolve a location description to a country token",
	Long:  `Runs a location description through the country resolver and prints the token.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resolver := country.NewDefaultResolver()
		location := strings.Join(args, " ")
		fmt.Println(resolver.Resolve(location))
	},
}

func init() {
	RootCmd.AddCommand(resolveCmd)
}
