package bidadjustment

import (
	"github.com/buger/jsonparser"
	"github.com/prebid/openrtb/v20/openrtb2"
)

// EnrichBidRequest writes the effective rules into request.ext.prebid.bidadjustments, dropping
// the key when no rule survived validation.
func EnrichBidRequest(req *openrtb2.BidRequest, adjustments *BidAdjustments) error {
	if req == nil {
		return nil
	}

	ext := append([]byte(nil), req.Ext...)

	if adjustments == nil || len(adjustments.Merged) == 0 {
		if len(ext) == 0 {
			return nil
		}
		if _, _, _, err := jsonparser.Get(ext, "prebid", "bidadjustments"); err == nil {
			req.Ext = jsonparser.Delete(ext, "prebid", "bidadjustments")
		}
		return nil
	}

	if len(ext) == 0 {
		ext = []byte("{}")
	}
	updated, err := jsonparser.Set(ext, adjustments.Merged, "prebid", "bidadjustments")
	if err != nil {
		return err
	}
	req.Ext = updated
	return nil
}
