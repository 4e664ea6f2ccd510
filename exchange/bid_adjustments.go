package exchange

import (
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/prebid/prebid-bidadjustments/bidadjustment"
	"github.com/prebid/prebid-bidadjustments/config"
	"github.com/prebid/prebid-bidadjustments/currency"
	"github.com/prebid/prebid-bidadjustments/exchange/entities"
	"github.com/prebid/prebid-bidadjustments/floors"
	"github.com/prebid/prebid-bidadjustments/logger"
	"github.com/prebid/prebid-bidadjustments/metrics"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
)

const defaultBidCurrency = "USD"

// BidAdjustmentsProcessor prices bids for the auction: it converts them into the ad server
// currency, applies the legacy factors and then the resolved bid adjustment rules.
// It is safe for concurrent use.
type BidAdjustmentsProcessor struct {
	retriever            *bidadjustment.Retriever
	metricsEngine        metrics.MetricsEngine
	defaultCurrency      string
	maxConcurrentBidders int
}

func NewBidAdjustmentsProcessor(cfg *config.Configuration, me metrics.MetricsEngine) *BidAdjustmentsProcessor {
	if me == nil {
		me = &metrics.NilMetricsEngine{}
	}
	processor := &BidAdjustmentsProcessor{
		metricsEngine:   me,
		defaultCurrency: defaultBidCurrency,
	}
	var samplingRate float32
	if cfg != nil {
		if cfg.AdServerCurrency != "" {
			processor.defaultCurrency = cfg.AdServerCurrency
		}
		samplingRate = cfg.BidAdjustments.LogSamplingRate
		processor.maxConcurrentBidders = cfg.BidAdjustments.MaxConcurrentBidders
	}
	processor.retriever = bidadjustment.NewRetriever(me, samplingRate)
	return processor
}

// ResolveAdjustments builds the auction's rule set from the request and account trees and writes
// the effective tree back into the request ext. Warnings are only returned for debug requests.
func (p *BidAdjustmentsProcessor) ResolveAdjustments(req *openrtb2.BidRequest, account config.Account) (*bidadjustment.BidAdjustments, []error) {
	reqExt, err := openrtb_ext.ParseExtRequest(req)
	if err != nil {
		logger.Debugf("bid adjustments ignored request ext: %v", err)
		reqExt = &openrtb_ext.ExtRequest{}
	}

	adjustments, warnings := p.retriever.Retrieve(reqExt.Prebid.BidAdjustments, account.BidAdjustments, reqExt.IsDebug(req))
	if err := bidadjustment.EnrichBidRequest(req, adjustments); err != nil {
		logger.Errorf("Failed to write bid adjustments into request: %v", err)
	}
	return adjustments, warnings
}

// AdjustBidderFloors lowers the floors of a bidder's copy of the request so they match the
// adjusted prices its bids will have.
func (p *BidAdjustmentsProcessor) AdjustBidderFloors(bidderReq *openrtb2.BidRequest, bidder string, adjustments *bidadjustment.BidAdjustments, account config.Account, conversions currency.Conversions) error {
	err := floors.AdjustImpFloors(bidderReq, bidder, p.adServerCurrency(bidderReq), adjustments, account, currency.NewConverter(conversions))
	if err != nil {
		p.metricsEngine.RecordFloorAdjustmentError(bidder)
	}
	return err
}

type auctionPricing struct {
	adServerCurrency string
	factors          *openrtb_ext.ExtRequestBidAdjustmentFactors
	rules            bidadjustment.RuleSet
	converter        currency.Converter
	imps             []openrtb2.Imp
}

func (p *BidAdjustmentsProcessor) newAuctionPricing(req *openrtb2.BidRequest, adjustments *bidadjustment.BidAdjustments, conversions currency.Conversions) auctionPricing {
	pricing := auctionPricing{
		adServerCurrency: p.adServerCurrency(req),
		converter:        currency.NewConverter(conversions),
	}
	if adjustments != nil {
		pricing.rules = adjustments.Rules
	}
	if req != nil {
		pricing.imps = req.Imp
		if reqExt, err := openrtb_ext.ParseExtRequest(req); err == nil {
			pricing.factors = reqExt.Prebid.BidAdjustmentFactors
		}
	}
	return pricing
}

func (p *BidAdjustmentsProcessor) adServerCurrency(req *openrtb2.BidRequest) string {
	if req != nil && len(req.Cur) > 0 && req.Cur[0] != "" {
		return req.Cur[0]
	}
	return p.defaultCurrency
}

// EnrichWithAdjustedBids returns a copy of the participation with every bid priced. A bid
// that cannot be priced is dropped and reported as a generic error on the seat bid; the other
// bids are unaffected. The input participation is never modified.
func (p *BidAdjustmentsProcessor) EnrichWithAdjustedBids(
	participation entities.AuctionParticipation,
	req *openrtb2.BidRequest,
	adjustments *bidadjustment.BidAdjustments,
	conversions currency.Conversions,
) entities.AuctionParticipation {
	return p.adjustParticipation(participation, p.newAuctionPricing(req, adjustments, conversions))
}

func (p *BidAdjustmentsProcessor) adjustParticipation(participation entities.AuctionParticipation, pricing auctionPricing) entities.AuctionParticipation {
	if participation.RequestBlocked || participation.BidderResponse == nil || participation.BidderResponse.SeatBid == nil {
		return participation
	}

	bidder := participation.Bidder
	if bidder == "" {
		bidder = participation.BidderResponse.Bidder
	}

	seatBid := participation.BidderResponse.SeatBid
	adjustedSeatBid := &entities.BidderSeatBid{
		Bids:     make([]*entities.BidderBid, 0, len(seatBid.Bids)),
		Warnings: seatBid.Warnings,
		Errors:   append([]entities.BidderError(nil), seatBid.Errors...),
	}

	for _, bidderBid := range seatBid.Bids {
		if bidderBid == nil || bidderBid.Bid == nil {
			continue
		}
		adjusted, bidErr := p.adjustBid(bidder, bidderBid, pricing)
		if bidErr != nil {
			adjustedSeatBid.Errors = append(adjustedSeatBid.Errors, *bidErr)
			continue
		}
		adjustedSeatBid.Bids = append(adjustedSeatBid.Bids, adjusted)
	}

	response := *participation.BidderResponse
	response.SeatBid = adjustedSeatBid
	participation.BidderResponse = &response
	return participation
}

func (p *BidAdjustmentsProcessor) adjustBid(bidder string, bidderBid *entities.BidderBid, pricing auctionPricing) (*entities.BidderBid, *entities.BidderError) {
	bid := *bidderBid.Bid
	adjusted := *bidderBid
	adjusted.Bid = &bid

	bidCurrency := bidderBid.BidCurrency
	if bidCurrency == "" {
		bidCurrency = defaultBidCurrency
	}

	originalPrice := decimal.NewFromFloat(bid.Price)
	convertedPrice, err := pricing.converter.Convert(originalPrice, bidCurrency, pricing.adServerCurrency)
	if err != nil {
		p.metricsEngine.RecordBidAdjustmentDroppedBid(bidder, metrics.DroppedBidReasonCurrencyConversion)
		bidErr := entities.GenericError(fmt.Sprintf("Unable to convert bid currency %s to desired ad server currency %s", bidCurrency, pricing.adServerCurrency))
		return nil, &bidErr
	}

	if !convertedPrice.Equal(originalPrice) {
		adjusted.OriginalBidCPM = bid.Price
		adjusted.OriginalBidCur = bidCurrency
		ext, err := stampOriginalPrice(bid.Ext, bid.Price, bidCurrency)
		if err != nil {
			logger.Warnf("Failed to record original price of bid %s: %v", bid.ID, err)
		} else {
			bid.Ext = ext
		}
	}

	factor := bidadjustment.ResolveFactor(string(bidderBid.BidType), pricing.factors, bidder)
	price := bidadjustment.Price{
		Currency: pricing.adServerCurrency,
		Amount:   convertedPrice.Mul(factor),
	}

	mediaType := bidadjustment.BidMediaType(bidderBid.BidType, bid.ImpID, pricing.imps)
	rules := bidadjustment.Resolve(pricing.rules, mediaType, bidder, bidderBid.Seat, bid.DealID)

	price, err = bidadjustment.Apply(price, rules, pricing.converter)
	if err != nil {
		p.metricsEngine.RecordBidAdjustmentDroppedBid(bidder, metrics.DroppedBidReasonAdjustment)
		bidErr := entities.GenericError(err.Error())
		return nil, &bidErr
	}
	if len(rules) > 0 {
		p.metricsEngine.RecordBidAdjusted(bidder)
	}

	bid.Price = price.Amount.InexactFloat64()
	adjusted.BidCurrency = price.Currency
	return &adjusted, nil
}

func stampOriginalPrice(ext []byte, price float64, cur string) ([]byte, error) {
	stamped := append([]byte(nil), ext...)
	if len(stamped) == 0 {
		stamped = []byte("{}")
	}
	stamped, err := jsonparser.Set(stamped, []byte(strconv.FormatFloat(price, 'f', -1, 64)), openrtb_ext.OriginalBidCpmKey)
	if err != nil {
		return nil, err
	}
	return jsonparser.Set(stamped, []byte(strconv.Quote(cur)), openrtb_ext.OriginalBidCurKey)
}
