package errortypes

// BadInput should be used when an adjustment configuration cannot be parsed or violates
// its structural rules.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// NoConversionRate should be used when no exchange rate is known between two currencies.
type NoConversionRate struct {
	Message string
}

func (err *NoConversionRate) Error() string {
	return err.Message
}

func (err *NoConversionRate) Code() int {
	return NoConversionRateErrorCode
}

func (err *NoConversionRate) Severity() Severity {
	return SeverityFatal
}

// FailedToAdjustBid is returned when a bid price cannot be moved through its resolved rules.
// The bid it belongs to is dropped.
type FailedToAdjustBid struct {
	Message string
}

func (err *FailedToAdjustBid) Error() string {
	return err.Message
}

func (err *FailedToAdjustBid) Code() int {
	return FailedToAdjustBidErrorCode
}

func (err *FailedToAdjustBid) Severity() Severity {
	return SeverityFatal
}

// FloorConfig flags rules which cannot be inverted onto a floor price.
//
// This is a configuration error for the auction, not something a bidder caused.
type FloorConfig struct {
	Message string
}

func (err *FloorConfig) Error() string {
	return err.Message
}

func (err *FloorConfig) Code() int {
	return FloorConfigErrorCode
}

func (err *FloorConfig) Severity() Severity {
	return SeverityFatal
}

// FailedToUnmarshal should be used to represent errors that occur when unmarshaling raw json.
type FailedToUnmarshal struct {
	Message string
}

func (err *FailedToUnmarshal) Error() string {
	return err.Message
}

func (err *FailedToUnmarshal) Code() int {
	return FailedToUnmarshalErrorCode
}

func (err *FailedToUnmarshal) Severity() Severity {
	return SeverityFatal
}

// Warning is a generic non-fatal error. Throughout the codebase, an error can
// only be a warning if it's of the type defined below
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}
