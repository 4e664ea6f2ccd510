package exchange

import (
	"runtime/debug"

	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/prebid/prebid-bidadjustments/bidadjustment"
	"github.com/prebid/prebid-bidadjustments/currency"
	"github.com/prebid/prebid-bidadjustments/exchange/entities"
	"github.com/prebid/prebid-bidadjustments/logger"
)

type adjustedParticipation struct {
	index         int
	participation entities.AuctionParticipation
}

// AdjustAllParticipations prices every bidder's bids, one goroutine per bidder. The rule set is
// shared read-only; results keep the order of the input.
func (p *BidAdjustmentsProcessor) AdjustAllParticipations(
	participations []entities.AuctionParticipation,
	req *openrtb2.BidRequest,
	adjustments *bidadjustment.BidAdjustments,
	conversions currency.Conversions,
) []entities.AuctionParticipation {
	pricing := p.newAuctionPricing(req, adjustments, conversions)

	chResults := make(chan adjustedParticipation, len(participations))
	var slots chan struct{}
	if p.maxConcurrentBidders > 0 {
		slots = make(chan struct{}, p.maxConcurrentBidders)
	}

	for i, participation := range participations {
		if slots != nil {
			slots <- struct{}{}
		}
		go p.recoverSafely(i, participation, chResults, slots, func() entities.AuctionParticipation {
			return p.adjustParticipation(participation, pricing)
		})
	}

	results := make([]entities.AuctionParticipation, len(participations))
	for range participations {
		result := <-chResults
		results[result.index] = result.participation
	}
	return results
}

// recoverSafely runs inner and always reports a result. A panicking bidder keeps its
// participation with every bid dropped.
func (p *BidAdjustmentsProcessor) recoverSafely(
	index int,
	participation entities.AuctionParticipation,
	chResults chan<- adjustedParticipation,
	slots chan struct{},
	inner func() entities.AuctionParticipation,
) {
	defer func() {
		if slots != nil {
			<-slots
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Bid adjustment recovered panic from Bidder %s: %v. Stack trace is: %v",
				participation.Bidder, r, string(debug.Stack()))
			chResults <- adjustedParticipation{index: index, participation: dropAllBids(participation)}
		}
	}()
	chResults <- adjustedParticipation{index: index, participation: inner()}
}

func dropAllBids(participation entities.AuctionParticipation) entities.AuctionParticipation {
	if participation.BidderResponse == nil || participation.BidderResponse.SeatBid == nil {
		return participation
	}
	response := *participation.BidderResponse
	seatBid := *response.SeatBid
	seatBid.Bids = nil
	seatBid.Errors = append(append([]entities.BidderError(nil), seatBid.Errors...),
		entities.GenericError("bid adjustment failed unexpectedly"))
	response.SeatBid = &seatBid
	participation.BidderResponse = &response
	return participation
}
