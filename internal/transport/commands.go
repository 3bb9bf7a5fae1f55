package transport

import (
	"math"
	"strconv"
	"strings"
)

const (
	MsgProductIDInvalid  = "productId not provided or not a number"
	MsgQuantityNotNumber = "Quantity provided is not a number"
	MsgQuantityPositive  = "Quantity must be greater than zero"
	MsgNameInvalid       = "Name missing or not a string"
	MsgEmailInvalid      = "Email missing or not a string"
	MsgPasswordInvalid   = "Password missing or not a string"
	MsgCategoryIDMissing = "Category id not provided"
	MsgBrandIDMissing    = "Brand id not provided"
	MsgCartItemIDInvalid = "CartItem with this id does not exist"
	MsgNoToken           = "No token provided."
)

// ValidationErrors collects every problem found in one request.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation: " + strings.Join(v, "; ")
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

type SignUpCommand struct {
	Name     string
	Email    string
	Password string
}

type SignInCommand struct {
	Email    string
	Password string
}

type AddToCartCommand struct {
	ProductID uint
	Quantity  int
}

func ParseSignUp(body map[string]any) (SignUpCommand, error) {
	var (
		cmd  SignUpCommand
		errs ValidationErrors
		ok   bool
	)
	if cmd.Name, ok = body["name"].(string); !ok {
		errs = append(errs, MsgNameInvalid)
	}
	if cmd.Email, ok = body["email"].(string); !ok {
		errs = append(errs, MsgEmailInvalid)
	}
	if cmd.Password, ok = body["password"].(string); !ok {
		errs = append(errs, MsgPasswordInvalid)
	}
	cmd.Email = strings.TrimSpace(cmd.Email)
	return cmd, errs.orNil()
}

func ParseSignIn(body map[string]any) (SignInCommand, error) {
	var (
		cmd  SignInCommand
		errs ValidationErrors
		ok   bool
	)
	if cmd.Email, ok = body["email"].(string); !ok {
		errs = append(errs, MsgEmailInvalid)
	}
	if cmd.Password, ok = body["password"].(string); !ok {
		errs = append(errs, MsgPasswordInvalid)
	}
	cmd.Email = strings.TrimSpace(cmd.Email)
	return cmd, errs.orNil()
}

// ParseAddToCart stops at a bad productId. Quantity problems are collected and
// an omitted quantity means one unit.
func ParseAddToCart(body map[string]any) (AddToCartCommand, error) {
	cmd := AddToCartCommand{Quantity: 1}

	id, ok := wholeNumber(body["productId"])
	if !ok || id <= 0 || id > math.MaxUint32 {
		return cmd, ValidationErrors{MsgProductIDInvalid}
	}
	cmd.ProductID = uint(id)

	var errs ValidationErrors
	if raw, present := body["quantity"]; present && raw != nil {
		f, isNumber := raw.(float64)
		switch {
		case !isNumber:
			errs = append(errs, MsgQuantityNotNumber)
		case f <= 0 || f != math.Trunc(f) || f > math.MaxInt32:
			errs = append(errs, MsgQuantityPositive)
		default:
			cmd.Quantity = int(f)
		}
	}
	return cmd, errs.orNil()
}

// ParseID reads a positive numeric path id. msg is reported when it is not one.
func ParseID(raw, msg string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, ValidationErrors{msg}
	}
	return uint(id), nil
}

func wholeNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}
