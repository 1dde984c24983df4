package dashboardController

import (
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/repositories"
	"context"
	"math"
	"slices"
	"strings"
	"time"
)

const (
	RECENT_ACTIVITY_WINDOW = 30 * 24 * time.Hour
	SYNC_WINDOW            = time.Hour
	ANALYTICS_MONTHS       = 6
)

type Stats struct {
	CustomerCount       int64 `json:"customerCount"`
	DocumentCount       int64 `json:"documentCount"`
	PaymentCount        int64 `json:"paymentCount"`
	CloudSyncPercentage int   `json:"cloudSyncPercentage"`
}

type MonthlyStat struct {
	Month          string  `json:"month"`
	Customers      int     `json:"customers"`
	Revenue        float64 `json:"revenue"`
	Communications int     `json:"conversations"`
}

type MoodShare struct {
	Mood       string `json:"mood"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type PolicyShare struct {
	PolicyType string  `json:"policyType"`
	Count      int     `json:"count"`
	Revenue    float64 `json:"revenue"`
}

type Analytics struct {
	TotalCustomers      int           `json:"totalCustomers"`
	ActiveConversations int           `json:"activeConversations"`
	TotalRevenue        float64       `json:"totalRevenue"`
	ConversionRate      float64       `json:"conversionRate"`
	MonthlyStats        []MonthlyStat `json:"monthlyStats"`
	ConversationMoods   []MoodShare   `json:"conversationMoods"`
	TopPolicies         []PolicyShare `json:"topPolicies"`
}

// conversationMoods has no live source yet and is served as a fixed breakdown.
var conversationMoods = []MoodShare{
	{Mood: "receptive", Count: 45, Percentage: 35},
	{Mood: "neutral", Count: 38, Percentage: 30},
	{Mood: "frustrated", Count: 25, Percentage: 20},
	{Mood: "confused", Count: 20, Percentage: 15},
}

type DashboardController struct {
	customerRepo      repositories.CustomerRepository
	documentRepo      repositories.DocumentRepository
	paymentRepo       repositories.PaymentRepository
	communicationRepo repositories.CommunicationRepository
	activeChats       func() int
	now               func() time.Time
	log               logger.Logger
}

func New(
	customerRepo repositories.CustomerRepository,
	documentRepo repositories.DocumentRepository,
	paymentRepo repositories.PaymentRepository,
	communicationRepo repositories.CommunicationRepository,
	activeChats func() int,
) *DashboardController {
	return &DashboardController{
		customerRepo:      customerRepo,
		documentRepo:      documentRepo,
		paymentRepo:       paymentRepo,
		communicationRepo: communicationRepo,
		activeChats:       activeChats,
		now:               func() time.Time { return time.Now().UTC() },
		log:               logger.New("DashboardController"),
	}
}

func (dc *DashboardController) GetStats(ctx context.Context) (Stats, error) {
	log := dc.log.Function("GetStats")
	now := dc.now()

	var stats Stats
	var err error

	if stats.CustomerCount, err = dc.customerRepo.Count(ctx); err != nil {
		return Stats{}, log.Err("failed to count customers", err)
	}
	if stats.DocumentCount, err = dc.documentRepo.CountSince(ctx, now.Add(-RECENT_ACTIVITY_WINDOW)); err != nil {
		return Stats{}, log.Err("failed to count documents", err)
	}
	if stats.PaymentCount, err = dc.paymentRepo.CountSince(ctx, now.Add(-RECENT_ACTIVITY_WINDOW)); err != nil {
		return Stats{}, log.Err("failed to count payments", err)
	}

	synced, err := dc.customerRepo.CountUpdatedSince(ctx, now.Add(-SYNC_WINDOW))
	if err != nil {
		return Stats{}, log.Err("failed to count synced customers", err)
	}
	stats.CloudSyncPercentage = SyncPercentage(synced, stats.CustomerCount)

	return stats, nil
}

// SyncPercentage is the rounded share of records touched within the sync window.
func SyncPercentage(synced, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(synced) / float64(total) * 100))
}

func (dc *DashboardController) GetAnalytics(ctx context.Context) (Analytics, error) {
	log := dc.log.Function("GetAnalytics")

	records, err := dc.customerRepo.GetAll(ctx)
	if err != nil {
		return Analytics{}, log.Err("failed to get customers", err)
	}

	communications, err := dc.communicationRepo.GetAll(ctx, CommunicationFilter{})
	if err != nil {
		return Analytics{}, log.Err("failed to get communications", err)
	}

	analytics := BuildAnalytics(records, communications, dc.now())
	if dc.activeChats != nil {
		analytics.ActiveConversations = dc.activeChats()
	}
	return analytics, nil
}

// BuildAnalytics summarises customers and communications for the analytics page. Revenue is
// the annual premium of active policies.
func BuildAnalytics(records []CustomerRecord, communications []CommunicationLog, now time.Time) Analytics {
	analytics := Analytics{
		TotalCustomers:    len(records),
		MonthlyStats:      make([]MonthlyStat, ANALYTICS_MONTHS),
		ConversationMoods: slices.Clone(conversationMoods),
		TopPolicies:       []PolicyShare{},
	}

	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(ANALYTICS_MONTHS - 1), 0)
	for i := range analytics.MonthlyStats {
		analytics.MonthlyStats[i].Month = firstMonth.AddDate(0, i, 0).Format("Jan 2006")
	}
	monthIndex := func(t time.Time) int {
		t = t.UTC()
		months := (t.Year()-firstMonth.Year())*12 + int(t.Month()) - int(firstMonth.Month())
		if months < 0 || months >= ANALYTICS_MONTHS {
			return -1
		}
		return months
	}

	policies := map[string]*PolicyShare{}
	active := 0
	for _, record := range records {
		customer := record.ToCustomer()
		premium := customer.InsuranceInfo.Premium
		isActive := customer.InsuranceInfo.Status == PolicyStatusActive

		if isActive {
			active++
			analytics.TotalRevenue += premium
		}

		if i := monthIndex(record.CreatedAt); i >= 0 {
			analytics.MonthlyStats[i].Customers++
			if isActive {
				analytics.MonthlyStats[i].Revenue += premium
			}
		}

		policyType := strings.TrimSpace(customer.InsuranceInfo.PolicyType)
		if policyType == "" {
			continue
		}
		share, ok := policies[policyType]
		if !ok {
			share = &PolicyShare{PolicyType: policyType}
			policies[policyType] = share
		}
		share.Count++
		if isActive {
			share.Revenue += premium
		}
	}

	for _, communication := range communications {
		if i := monthIndex(communication.CreatedAt); i >= 0 {
			analytics.MonthlyStats[i].Communications++
		}
	}

	if len(records) > 0 {
		analytics.ConversionRate = math.Round(float64(active)/float64(len(records))*1000) / 1000
	}

	for _, share := range policies {
		analytics.TopPolicies = append(analytics.TopPolicies, *share)
	}
	slices.SortFunc(analytics.TopPolicies, func(a, b PolicyShare) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.PolicyType, b.PolicyType)
	})

	return analytics
}
