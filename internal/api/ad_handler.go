package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/internal/transform"
)

// AdHandler serves the admin campaign CRUD dispatch and the event tracker.
type AdHandler struct {
	ads repository.AdRepository
}

// NewAdHandler creates an AdHandler.
func NewAdHandler(ads repository.AdRepository) *AdHandler {
	return &AdHandler{ads: ads}
}

// adFields is the mutable subset of a campaign accepted on create/update.
// Pointers distinguish "absent" from "set to zero" for partial updates.
type adFields struct {
	PartnerID         *string  `json:"partner_id"`
	CampaignName      *string  `json:"campaign_name"`
	MatchedStationIDs []string `json:"matched_station_ids"`
	MatchedArea       *string  `json:"matched_area"`
	AdTypeA           *string  `json:"ad_type_a"`
	AdTypeB           *string  `json:"ad_type_b"`
	ImageAURL         *string  `json:"image_a_url"`
	ImageBURL         *string  `json:"image_b_url"`
	LandingURL        *string  `json:"landing_url"`
	DisplayStartDate  *string  `json:"display_start_date"`
	DisplayEndDate    *string  `json:"display_end_date"`
	IsActive          *bool    `json:"is_active"`
	Priority          *int     `json:"priority"`
	Description       *string  `json:"description"`
}

type adRequest struct {
	Action string    `json:"action"`
	ID     string    `json:"id"`
	Date   string    `json:"date"`
	Ad     *adFields `json:"ad"`
}

// Ads handles POST /api/ads: a single dispatch endpoint keyed by action.
func (h *AdHandler) Ads(w http.ResponseWriter, r *http.Request) {
	var req adRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	ctx := r.Context()
	switch req.Action {
	case "list":
		ads, err := h.ads.List(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": ads})

	case "get":
		if req.ID == "" {
			badRequest(w, "id is required for get")
			return
		}
		ad, err := h.ads.Get(ctx, req.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": ad})

	case "create":
		if req.Ad == nil || req.Ad.CampaignName == nil || *req.Ad.CampaignName == "" {
			badRequest(w, "ad.campaign_name is required for create")
			return
		}
		if req.Ad.DisplayStartDate == nil || req.Ad.DisplayEndDate == nil {
			badRequest(w, "ad.display_start_date and ad.display_end_date are required for create")
			return
		}
		ad := buildCampaign(req.Ad)
		if err := h.ads.Create(ctx, ad); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{"data": ad})

	case "update":
		if req.ID == "" {
			badRequest(w, "id is required for update")
			return
		}
		fields := updateFields(req.Ad)
		if len(fields) == 0 {
			badRequest(w, "no fields to update")
			return
		}
		ad, err := h.ads.Update(ctx, req.ID, fields)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": ad})

	case "delete":
		if req.ID == "" {
			badRequest(w, "id is required for delete")
			return
		}
		if err := h.ads.Delete(ctx, req.ID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	case "get_active":
		date := req.Date
		if date == "" {
			date = time.Now().In(transform.KST).Format("2006-01-02")
		}
		ads, err := h.ads.ListActive(ctx, date)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": ads})

	default:
		badRequest(w, "unknown action: "+req.Action)
	}
}

func buildCampaign(fields *adFields) *entity.AdCampaign {
	ad := &entity.AdCampaign{
		ID:                uuid.NewString(),
		MatchedStationIDs: fields.MatchedStationIDs,
		MatchedArea:       fields.MatchedArea,
		AdTypeA:           fields.AdTypeA,
		AdTypeB:           fields.AdTypeB,
		ImageAURL:         fields.ImageAURL,
		ImageBURL:         fields.ImageBURL,
		LandingURL:        fields.LandingURL,
		Description:       fields.Description,
	}
	if fields.PartnerID != nil {
		ad.PartnerID = *fields.PartnerID
	}
	if fields.CampaignName != nil {
		ad.CampaignName = *fields.CampaignName
	}
	if fields.DisplayStartDate != nil {
		ad.DisplayStartDate = *fields.DisplayStartDate
	}
	if fields.DisplayEndDate != nil {
		ad.DisplayEndDate = *fields.DisplayEndDate
	}
	if fields.IsActive != nil {
		ad.IsActive = *fields.IsActive
	}
	if fields.Priority != nil {
		ad.Priority = *fields.Priority
	}
	return ad
}

// updateFields builds the column map for a partial update from the fields
// actually present in the request.
func updateFields(fields *adFields) map[string]interface{} {
	out := map[string]interface{}{}
	if fields == nil {
		return out
	}
	if fields.PartnerID != nil {
		out["partner_id"] = *fields.PartnerID
	}
	if fields.CampaignName != nil {
		out["campaign_name"] = *fields.CampaignName
	}
	if fields.MatchedStationIDs != nil {
		encoded, _ := json.Marshal(fields.MatchedStationIDs)
		out["matched_station_ids"] = string(encoded)
	}
	if fields.MatchedArea != nil {
		out["matched_area"] = *fields.MatchedArea
	}
	if fields.AdTypeA != nil {
		out["ad_type_a"] = *fields.AdTypeA
	}
	if fields.AdTypeB != nil {
		out["ad_type_b"] = *fields.AdTypeB
	}
	if fields.ImageAURL != nil {
		out["image_a_url"] = *fields.ImageAURL
	}
	if fields.ImageBURL != nil {
		out["image_b_url"] = *fields.ImageBURL
	}
	if fields.LandingURL != nil {
		out["landing_url"] = *fields.LandingURL
	}
	if fields.DisplayStartDate != nil {
		out["display_start_date"] = *fields.DisplayStartDate
	}
	if fields.DisplayEndDate != nil {
		out["display_end_date"] = *fields.DisplayEndDate
	}
	if fields.IsActive != nil {
		out["is_active"] = *fields.IsActive
	}
	if fields.Priority != nil {
		out["priority"] = *fields.Priority
	}
	if fields.Description != nil {
		out["description"] = *fields.Description
	}
	return out
}

type adEventRequest struct {
	AdCampaignID   string          `json:"ad_campaign_id"`
	EventType      string          `json:"event_type"`
	StationID      *string         `json:"station_id"`
	AdditionalData json.RawMessage `json:"additional_data"`
}

// AdEvents handles POST /api/ad-events, recording one impression or click
// with the caller's user agent and IP.
func (h *AdHandler) AdEvents(w http.ResponseWriter, r *http.Request) {
	var req adEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.AdCampaignID == "" {
		badRequest(w, "ad_campaign_id is required")
		return
	}
	if req.EventType != entity.AdEventImpression && req.EventType != entity.AdEventClick {
		badRequest(w, "event_type must be impression or click")
		return
	}

	event := &entity.AdEvent{
		ID:           uuid.NewString(),
		AdCampaignID: req.AdCampaignID,
		EventType:    req.EventType,
		StationID:    req.StationID,
	}
	if len(req.AdditionalData) > 0 && string(req.AdditionalData) != "null" {
		data := string(req.AdditionalData)
		event.AdditionalData = &data
	}
	if ua := r.UserAgent(); ua != "" {
		event.UserAgent = &ua
	}
	if ip := clientIP(r); ip != "" {
		event.IPAddress = &ip
	}

	if err := h.ads.InsertEvent(r.Context(), event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "id": event.ID})
}
