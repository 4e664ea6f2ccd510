package openrtb_ext

// BidType describes the allowed values for bidresponse.seatbid.bid[i].ext.prebid.type
type BidType string

const (
	BidTypeBanner BidType = "banner"
	BidTypeVideo  BidType = "video"
	BidTypeAudio  BidType = "audio"
	BidTypeNative BidType = "native"
)

// Keys stamped into bid.ext when a bid's price had to be converted into the ad server currency.
const (
	OriginalBidCpmKey = "origbidcpm"
	OriginalBidCurKey = "origbidcur"
)
