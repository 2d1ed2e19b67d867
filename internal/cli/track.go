package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track <tracking-id>",
	Short: "Track an order by its public tracking identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	tracked, err := a.store.Orders.Track(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to track order: %s", a.store.Orders.Err())
	}

	fmt.Printf("Order %s\n", tracked.TrackingID)
	fmt.Printf("  Status: %s\n", tracked.Status)
	fmt.Printf("  Placed: %s\n", tracked.CreatedAt.Format("2006-01-02"))
	fmt.Printf("  Total:  %s\n", tracked.TotalAmount.StringFixed(2))
	for _, item := range tracked.Items {
		fmt.Printf("  - %s (%s/%s) x%d\n", item.Name, item.Size, item.Color, item.Quantity)
	}

	if history := a.store.Orders.History(); len(history) > 1 {
		fmt.Printf("\nRecently tracked:\n")
		for _, entry := range history[1:] {
			fmt.Printf("  %s  %s  %s\n", entry.TrackingID, entry.Status, entry.OrderDate)
		}
	}
	return nil
}
