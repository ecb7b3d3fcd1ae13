package models

import "fmt"

// Word is a single vocabulary entry. CompositeID is "<groupID>_<localID>".
type Word struct {
	CompositeID string `json:"id"`
	GroupID     int    `json:"group_id"`
	LocalID     int    `json:"local_id"`
	Greek       string `json:"gr"`
	English     string `json:"en"`
	Russian     string `json:"ru"`
}

// CompositeWordID builds the stable card/word identifier.
func CompositeWordID(groupID, localID int) string {
	return fmt.Sprintf("%d_%d", groupID, localID)
}

// Group is a vocabulary group. Only words of opened groups are studied.
type Group struct {
	ID      int    `json:"id"`
	Version int    `json:"version"`
	NameEn  string `json:"name_en"`
	NameRu  string `json:"name_ru"`
	Opened  bool   `json:"opened"`
}

// GroupProgress counts seen words within a group.
type GroupProgress struct {
	Group
	Seen  int `json:"seen"`
	Total int `json:"total"`
}
