package models

import "time"

// Client types a player can connect with.
const (
	ClientJava    = "java"
	ClientBedrock = "bedrock"
)

// CampaignStatusActive/Ended are the only campaign states; the
// transition active -> ended is one-way.
const (
	CampaignStatusActive = "active"
	CampaignStatusEnded  = "ended"
)

// GlobalHostname is the reserved pseudo-hostname under which the
// sampler stores the summed player count across all hostnames.
const GlobalHostname = "global"

// JoinEvent is recorded once per successful login. Country and tier
// come from the caller (geolocation is an external collaborator) and
// are stored as received.
type JoinEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PlayerID    string    `json:"player_id" gorm:"type:varchar(36);not null;index"`
	Hostname    string    `json:"hostname" gorm:"not null;index"`
	ClientType  string    `json:"client_type" gorm:"not null"`
	Country     *string   `json:"country,omitempty"`
	CountryTier *string   `json:"country_tier,omitempty" gorm:"index"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null;index"`
}

func (JoinEvent) TableName() string { return "joins" }

// RevenueEntry is immutable once written. Currency is an opaque code;
// no cross-currency arithmetic is ever performed on amounts.
type RevenueEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Hostname  string    `json:"hostname" gorm:"not null;index:idx_revenue_hostname_time"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Currency  string    `json:"currency" gorm:"type:varchar(10);not null;index"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index:idx_revenue_hostname_time"`
}

func (RevenueEntry) TableName() string { return "revenue" }

// Campaign is a cost/revenue-tracked marketing entity. TotalRevenue is
// mutated only by the attribution step of RevenueRepository.Record.
type Campaign struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"start_date" gorm:"not null"`
	EndDate      time.Time `json:"end_date"`
	Currency     string    `json:"currency" gorm:"type:varchar(10);not null"`
	Cost         float64   `json:"cost" gorm:"not null"`
	TotalRevenue float64   `json:"total_revenue" gorm:"default:0"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:'active';index"`
}

func (Campaign) TableName() string { return "campaigns" }

// CampaignHostname is a many-to-many edge between a campaign and a
// server hostname. Attribution always uses the current edge set.
type CampaignHostname struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	CampaignName string `json:"campaign_name" gorm:"not null;uniqueIndex:idx_campaign_hostname"`
	Hostname     string `json:"hostname" gorm:"not null;uniqueIndex:idx_campaign_hostname;index"`
}

func (CampaignHostname) TableName() string { return "campaign_hostnames" }

// Session is persisted only once closed; open sessions live in the
// in-memory tracker. Duration is in seconds.
type Session struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	PlayerID  string     `json:"player_id" gorm:"type:varchar(36);not null;index"`
	Hostname  string     `json:"hostname" gorm:"not null;index:idx_session_hostname_time"`
	StartTime time.Time  `json:"start_time" gorm:"not null;index:idx_session_hostname_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  *int64     `json:"duration,omitempty"`
}

func (Session) TableName() string { return "session_stats" }

// PlayerCountSample is one point of the concurrent-player series for a
// hostname, written by the sampler on a fixed interval.
type PlayerCountSample struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Hostname  string    `json:"hostname" gorm:"not null;index:idx_count_hostname_time"`
	Count     int       `json:"count" gorm:"not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index:idx_count_hostname_time"`
}

func (PlayerCountSample) TableName() string { return "player_counts" }
