package floors

import (
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/prebid/prebid-bidadjustments/bidadjustment"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
)

const (
	defaultFloorCurrency = "USD"
	// floorPrecision is the number of decimal places adjusted floors are rounded to, half-even.
	floorPrecision int32 = 4
)

// ImpMediaTypes lists the media types an impression can be filled with. Video is refined into
// in-stream or out-stream from its placement.
func ImpMediaTypes(imp *openrtb2.Imp) []string {
	if imp == nil {
		return nil
	}
	var mediaTypes []string
	if imp.Banner != nil {
		mediaTypes = append(mediaTypes, openrtb_ext.AdjustmentMediaTypeBanner)
	}
	if imp.Video != nil {
		mediaTypes = append(mediaTypes, bidadjustment.VideoMediaType(imp.Video))
	}
	if imp.Audio != nil {
		mediaTypes = append(mediaTypes, openrtb_ext.AdjustmentMediaTypeAudio)
	}
	if imp.Native != nil {
		mediaTypes = append(mediaTypes, openrtb_ext.AdjustmentMediaTypeNative)
	}
	return mediaTypes
}
