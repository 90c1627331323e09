package chips

import "fmt"

// InputMismatchError reports a buy-in list whose length does not match the
// player count.
type InputMismatchError struct {
	NumPlayers int
	NumBuyIns  int
}

func (e *InputMismatchError) Error() string {
	return fmt.Sprintf("number of buy-ins (%d) must match number of players (%d)", e.NumBuyIns, e.NumPlayers)
}

// InvalidParameterError reports a parameter outside its valid range.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}
