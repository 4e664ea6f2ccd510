package entities

import (
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
)

// AuctionParticipation is the outcome of calling one bidder during an auction.
type AuctionParticipation struct {
	Bidder         string
	RequestBlocked bool
	BidderResponse *BidderResponse
}

// BidderResponse wraps the seat bid returned by a bidder.
type BidderResponse struct {
	Bidder             string
	SeatBid            *BidderSeatBid
	ResponseTimeMillis int
}

// BidderSeatBid is the collection of bids and errors a bidder produced.
type BidderSeatBid struct {
	Bids     []*BidderBid
	Warnings []BidderError
	Errors   []BidderError
}

// BidderBid is a single bid together with the information needed to price it.
type BidderBid struct {
	Bid         *openrtb2.Bid
	BidType     openrtb_ext.BidType
	BidCurrency string
	// Seat is set when the bidder answered on behalf of another seat.
	Seat string
	// OriginalBidCPM and OriginalBidCur hold the price as returned by the bidder when it had to be
	// converted into the ad server currency.
	OriginalBidCPM float64
	OriginalBidCur string
}

// BidderErrorType classifies errors attached to a seat bid.
type BidderErrorType string

const (
	BidderErrorGeneric           BidderErrorType = "generic"
	BidderErrorBadInput          BidderErrorType = "bad_input"
	BidderErrorBadServerResponse BidderErrorType = "bad_server_response"
	BidderErrorTimeout           BidderErrorType = "timeout"
)

type BidderError struct {
	Message string
	Type    BidderErrorType
}

// GenericError builds a BidderError of the generic type.
func GenericError(message string) BidderError {
	return BidderError{Message: message, Type: BidderErrorGeneric}
}
