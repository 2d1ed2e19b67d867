package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cartSize     string
	cartColor    string
	cartQuantity int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product selection to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a selection from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().StringVar(&cartSize, "size", "", "size")
	cartAddCmd.Flags().StringVar(&cartColor, "color", "", "color")
	cartAddCmd.Flags().IntVar(&cartQuantity, "quantity", 1, "quantity (1-10)")
	cartRemoveCmd.Flags().StringVar(&cartSize, "size", "", "size")
	cartRemoveCmd.Flags().StringVar(&cartColor, "color", "", "color")
	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}

func runCartShow(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	items := a.store.Cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%-26s %-30s %s/%s x%d  %8s\n",
			item.Key(), item.Product.Name, item.Size, item.Color,
			item.Quantity, item.Price.StringFixed(2),
		)
	}
	fmt.Printf("\n%d items, subtotal %s\n", a.store.Cart.ItemCount(), a.store.Cart.Total().StringFixed(2))
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	if cartQuantity < 1 || cartQuantity > 10 {
		return fmt.Errorf("quantity must be between 1 and 10, got %d", cartQuantity)
	}

	product, err := a.store.Client.Product(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch product %s: %w", args[0], err)
	}

	a.store.Cart.AddItem(*product, cartSize, cartColor, cartQuantity)
	fmt.Printf("Added %s (%s/%s) x%d\n", product.Name, cartSize, cartColor, cartQuantity)
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	a.store.Cart.RemoveItem(args[0], cartSize, cartColor)
	fmt.Printf("Removed %s (%s/%s)\n", args[0], cartSize, cartColor)
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	a.store.Cart.Clear()
	fmt.Println("Cart cleared")
	return nil
}
