package bidadjustment

import (
	"github.com/prebid/openrtb/v20/adcom1"
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
)

// VideoMediaType refines video into in-stream (placement 1) or out-stream.
func VideoMediaType(video *openrtb2.Video) string {
	if video != nil && video.Placement == adcom1.VideoPlacementInStream {
		return openrtb_ext.AdjustmentMediaTypeVideoInstream
	}
	return openrtb_ext.AdjustmentMediaTypeVideoOutstream
}

// BidMediaType is the media type rules are resolved with for a bid. Video bids are refined using
// the impression they answer; a bid whose impression is unknown counts as in-stream.
func BidMediaType(bidType openrtb_ext.BidType, impID string, imps []openrtb2.Imp) string {
	if bidType != openrtb_ext.BidTypeVideo {
		return string(bidType)
	}
	for i := range imps {
		if imps[i].ID == impID {
			return VideoMediaType(imps[i].Video)
		}
	}
	return openrtb_ext.AdjustmentMediaTypeVideoInstream
}
