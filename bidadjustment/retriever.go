package bidadjustment

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/prebid/prebid-bidadjustments/config/util"
	"github.com/prebid/prebid-bidadjustments/errortypes"
	"github.com/prebid/prebid-bidadjustments/logger"
	"github.com/prebid/prebid-bidadjustments/metrics"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	jsonpatch "gopkg.in/evanphx/json-patch.v4"
)

// Source tells which configuration a rule bucket was taken from.
type Source string

const (
	SourceRequest Source = "request"
	SourceAccount Source = "account"
)

// BidAdjustments is the effective configuration of one auction.
type BidAdjustments struct {
	Rules RuleSet
	// Merged is the validated, merged tree in its wire form, nil when no rules survived.
	Merged  json.RawMessage
	sources map[RuleKey]Source
}

// Source returns where the bucket under key came from.
func (b *BidAdjustments) Source(key RuleKey) (Source, bool) {
	if b == nil {
		return "", false
	}
	source, ok := b.sources[key]
	return source, ok
}

// Retriever validates and merges the request and account rule trees of an auction.
type Retriever struct {
	metricsEngine   metrics.MetricsEngine
	logSamplingRate float32
}

func NewRetriever(me metrics.MetricsEngine, logSamplingRate float32) *Retriever {
	if me == nil {
		me = &metrics.NilMetricsEngine{}
	}
	return &Retriever{
		metricsEngine:   me,
		logSamplingRate: logSamplingRate,
	}
}

// Retrieve never fails. An invalid tree is dropped as a whole and, with debug enabled, reported
// as a warning. Rules from the request win over the account on every bucket both define.
func (r *Retriever) Retrieve(requestAdjustments, accountAdjustments json.RawMessage, debugEnabled bool) (*BidAdjustments, []error) {
	var warnings []error

	requestTree, err := parseAndValidate(requestAdjustments)
	if err != nil {
		r.metricsEngine.RecordBidAdjustmentInvalid(metrics.AdjustmentSourceRequest)
		if debugEnabled {
			warnings = append(warnings, invalidWarning(SourceRequest, err))
		}
		requestTree = nil
	}

	accountTree, err := parseAndValidate(accountAdjustments)
	if err != nil {
		r.metricsEngine.RecordBidAdjustmentInvalid(metrics.AdjustmentSourceAccount)
		util.LogRandomSample(fmt.Sprintf("Invalid bid adjustments in account config: %v", err), logger.Warnf, r.logSamplingRate)
		if debugEnabled {
			warnings = append(warnings, invalidWarning(SourceAccount, err))
		}
		accountTree = nil
	}

	adjustments, err := build(requestTree, accountTree)
	if err != nil {
		logger.Errorf("Failed to merge bid adjustments, using request rules only: %v", err)
		adjustments, _ = build(requestTree, nil)
	}
	return adjustments, warnings
}

func invalidWarning(source Source, err error) error {
	return &errortypes.Warning{
		WarningCode: errortypes.BidAdjustmentWarningCode,
		Message:     fmt.Sprintf("bid adjustment from %s was invalid: %v", source, err),
	}
}

func parseAndValidate(raw json.RawMessage) (*openrtb_ext.ExtRequestPrebidBidAdjustments, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	tree := &openrtb_ext.ExtRequestPrebidBidAdjustments{}
	if err := json.Unmarshal(raw, tree); err != nil {
		return nil, &errortypes.FailedToUnmarshal{Message: err.Error()}
	}
	if err := Validate(tree); err != nil {
		return nil, err
	}
	FoldIdentities(tree)
	return tree, nil
}

func build(requestTree, accountTree *openrtb_ext.ExtRequestPrebidBidAdjustments) (*BidAdjustments, error) {
	if requestTree == nil && accountTree == nil {
		return &BidAdjustments{}, nil
	}

	merged, err := merge(requestTree, accountTree)
	if err != nil {
		return nil, err
	}

	mergedTree := &openrtb_ext.ExtRequestPrebidBidAdjustments{}
	if err := json.Unmarshal(merged, mergedTree); err != nil {
		return nil, err
	}

	adjustments := &BidAdjustments{
		Rules:   NewRuleSet(mergedTree),
		sources: make(map[RuleKey]Source),
	}
	if adjustments.Rules.IsEmpty() {
		return adjustments, nil
	}
	adjustments.Merged = merged

	requestRules := NewRuleSet(requestTree)
	for _, key := range adjustments.Rules.Keys() {
		if _, fromRequest := requestRules.rules[key]; fromRequest {
			adjustments.sources[key] = SourceRequest
		} else {
			adjustments.sources[key] = SourceAccount
		}
	}
	return adjustments, nil
}

// merge lays the request tree over the account tree as a JSON merge patch. Rule lists are
// replaced whole, so a deal bucket present in both keeps the request's rules.
func merge(requestTree, accountTree *openrtb_ext.ExtRequestPrebidBidAdjustments) (json.RawMessage, error) {
	requestJSON, err := marshalTree(requestTree)
	if err != nil {
		return nil, err
	}
	accountJSON, err := marshalTree(accountTree)
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(accountJSON, requestJSON)
}

func marshalTree(tree *openrtb_ext.ExtRequestPrebidBidAdjustments) ([]byte, error) {
	if tree == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(tree)
}
