package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront/client/internal/domain/catalog"
)

var (
	productsSearch   string
	productsCategory string
	productsSort     string
	productsOrder    string
	productsPage     int
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
	RunE:  runProducts,
}

func init() {
	productsCmd.Flags().StringVar(&productsSearch, "search", "", "search term")
	productsCmd.Flags().StringVar(&productsCategory, "category", "", "category filter")
	productsCmd.Flags().StringVar(&productsSort, "sort", "", "sort field (price, name, createdAt)")
	productsCmd.Flags().StringVar(&productsOrder, "order", "", "sort order (asc, desc)")
	productsCmd.Flags().IntVar(&productsPage, "page", 0, "page number")
	rootCmd.AddCommand(productsCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	filters := catalog.DefaultFilters().Merge(catalog.Filters{
		Search:    productsSearch,
		Category:  productsCategory,
		SortBy:    productsSort,
		SortOrder: productsOrder,
		Page:      productsPage,
	})

	if err := a.store.Catalog.FetchProducts(cmd.Context(), filters); err != nil {
		return fmt.Errorf("failed to fetch products: %s", a.store.Catalog.Err())
	}

	products := a.store.Catalog.Products()
	pagination := a.store.Catalog.Pagination()

	fmt.Printf("Page %d of %d (%d products)\n\n", pagination.CurrentPage, pagination.TotalPages, pagination.Total)
	for _, p := range products {
		fmt.Printf("%-26s %-30s %8s  %s\n", p.Key(), p.Name, p.Price.StringFixed(2), p.Category)
	}
	return nil
}
