package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mediaforge/mediaforge/internal/lib"
	"github.com/mediaforge/mediaforge/internal/models"
)

// operationsCmd represents the operations command group
var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "Inspect the operations the service offers",
	Long: `Inspect the media-processing operations the service offers.

Available subcommands:
  list - List all operations grouped by media type
  show - Show one operation's parameters and formats`,
}

// operationsListCmd represents the operations list command
var operationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all operations grouped by media type",
	Long: `List every operation the service offers, grouped by the media type
it accepts.

Example:
  mediaforge operations list`,
	RunE: runOperationsList,
}

// operationsShowCmd represents the operations show command
var operationsShowCmd = &cobra.Command{
	Use:   "show <operation>",
	Short: "Show one operation's parameters and formats",
	Long: `Show a single operation: its description, accepted and produced
formats, and every parameter with its type, constraints, and default.

Example:
  mediaforge operations show transcode`,
	Args: cobra.ExactArgs(1),
	RunE: runOperationsShow,
}

func init() {
	rootCmd.AddCommand(operationsCmd)
	operationsCmd.AddCommand(operationsListCmd)
	operationsCmd.AddCommand(operationsShowCmd)
}

func runOperationsList(cmd *cobra.Command, args []string) error {
	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	operations, err := client.ListOperations()
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	if len(operations) == 0 {
		fmt.Println("No operations available")
		return nil
	}

	grouped := models.GroupOperationsByMediaType(operations)
	for _, mediaType := range models.AllMediaTypes {
		group := grouped.ForMediaType(mediaType)
		if len(group) == 0 {
			continue
		}

		fmt.Printf("%s:\n", strings.ToUpper(string(mediaType)))
		for _, op := range group {
			fmt.Printf("  %-24s %s\n", op.Name, op.Description)
		}
		fmt.Println()
	}

	fmt.Printf("Total: %d operations\n", grouped.Total())
	return nil
}

func runOperationsShow(cmd *cobra.Command, args []string) error {
	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	operation, err := client.GetOperation(args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch operation: %w", err)
	}

	fmt.Printf("%s (%s)\n", operation.Name, operation.MediaType)
	fmt.Printf("  %s\n\n", operation.Description)
	fmt.Printf("  Input formats:  %s\n", formatList(operation.InputFormats, "any"))
	fmt.Printf("  Output formats: %s\n\n", formatList(operation.OutputFormats, "same as input"))

	if len(operation.Parameters) == 0 {
		fmt.Println("  No parameters")
		return nil
	}

	fmt.Printf("  %-20s %-9s %-9s %-14s %s\n", "PARAMETER", "TYPE", "REQUIRED", "DEFAULT", "CONSTRAINTS")
	for _, param := range operation.Parameters {
		fmt.Printf("  %-20s %-9s %-9v %-14v %s\n",
			param.Name,
			param.Type,
			param.Required,
			lib.ParameterDefault(param),
			describeConstraints(param),
		)
	}

	return nil
}

// formatList renders a format token list, substituting the display
// convention for an empty sequence
func formatList(formats []string, emptyMeaning string) string {
	if len(formats) == 0 {
		return emptyMeaning
	}
	return strings.Join(formats, ", ")
}

func describeConstraints(param models.ParameterSchema) string {
	switch param.Type {
	case models.ParameterTypeInteger, models.ParameterTypeFloat:
		var parts []string
		if param.Min != nil {
			parts = append(parts, fmt.Sprintf("min %v", *param.Min))
		}
		if param.Max != nil {
			parts = append(parts, fmt.Sprintf("max %v", *param.Max))
		}
		return strings.Join(parts, ", ")
	case models.ParameterTypeChoice:
		return "one of: " + strings.Join(param.Choices, ", ")
	default:
		return ""
	}
}
