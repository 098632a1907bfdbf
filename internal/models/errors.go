package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrEmailInUse          = errors.New("this e-mail address is already registered")
	ErrEmailEmpty          = errors.New("the e-mail address must not be empty")
	ErrClientNameEmpty     = errors.New("the name of a client must not be empty")
	ErrClientNameNotUnique = errors.New("you already have a client with this name")
	ErrClientLimitReached  = errors.New("you have reached the client limit of your plan")
	ErrDuplicatePayment    = errors.New("this installment has already been paid")
	ErrPaymentAmount       = errors.New("payment amounts must be larger than zero")
)
