package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки хранилища
	ErrNotFound = fmt.Errorf("not found")

	// 400 Bad Request
	ErrEmptyCart            = fmt.Errorf("cart is empty")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must not be negative")
	ErrStockMustBePositive  = fmt.Errorf("stock must not be negative")
	ErrInvalidPrice         = fmt.Errorf("invalid price value")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidQuantity      = fmt.Errorf("quantity must be a positive integer")
	ErrInvalidProductID     = fmt.Errorf("invalid product id")
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
