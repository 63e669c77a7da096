package services

import (
	"sort"
	"strings"

	"github.com/skillswaphq/skillswap-backend/internal/models"
)

// Request list sort modes. The stored order is newest first; the rest are
// view transforms applied per response.
const (
	ReqSortNewest = "newest"
	ReqSortOldest = "oldest"
	ReqSortName   = "name"
)

// FilterRequests narrows requests to those whose counterpart name or intro
// message contains the search term (case-insensitive). For incoming lists the
// counterpart is the sender; for outgoing lists the recipient.
func FilterRequests(reqs []models.MessageRequest, searchTerm string, incoming bool) []models.MessageRequest {
	searchTerm = strings.ToLower(strings.TrimSpace(searchTerm))
	if searchTerm == "" {
		return reqs
	}

	var out []models.MessageRequest
	for _, req := range reqs {
		name := req.ToUserName
		if incoming {
			name = req.FromUserName
		}
		if strings.Contains(strings.ToLower(name), searchTerm) ||
			strings.Contains(strings.ToLower(req.Message), searchTerm) {
			out = append(out, req)
		}
	}
	return out
}

// SortRequests reorders requests in place per the requested mode.
func SortRequests(reqs []models.MessageRequest, mode string, incoming bool) {
	switch mode {
	case ReqSortOldest:
		sort.SliceStable(reqs, func(i, j int) bool {
			return reqs[i].CreatedAt.Before(reqs[j].CreatedAt)
		})
	case ReqSortName:
		sort.SliceStable(reqs, func(i, j int) bool {
			a, b := reqs[i].ToUserName, reqs[j].ToUserName
			if incoming {
				a, b = reqs[i].FromUserName, reqs[j].FromUserName
			}
			return a < b
		})
	default:
		// newest: keep stored order
	}
}
