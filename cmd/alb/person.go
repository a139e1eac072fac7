package main

import (
	"fmt"

	"github.com/albums1001/albums/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(personCmd)
}

var personCmd = &cobra.Command{
	Use:   "person <name>",
	Short: "List the albums a person is credited on",
	Long: `List every album crediting the exact name, with the role it is credited
under (musician, arranger, writer or producer).

Example:
  alb person "Miles Davis"`,
	Args: cobra.ExactArgs(1),
	RunE: runPerson,
}

// PersonResponse is the response for the person command.
type PersonResponse struct {
	Name    string                 `json:"name"`
	Credits []storage.PersonCredit `json:"credits"`
}

func runPerson(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	name := args[0]
	credits, err := db.CreditsFor(name)
	if err != nil {
		exitWithError(ExitError, "looking up credits: %v", err)
	}
	if credits == nil {
		credits = []storage.PersonCredit{}
	}

	if !humanOutput {
		outputJSON(PersonResponse{Name: name, Credits: credits})
		return nil
	}

	if len(credits) == 0 {
		fmt.Printf("No albums credit %s\n", name)
		return nil
	}
	fmt.Printf("%s is credited on %d albums:\n\n", name, len(credits))
	for _, c := range credits {
		fmt.Printf("  %-9s %s\n", c.Role, truncateString(c.Title, ListTitleMaxLen))
	}
	return nil
}
