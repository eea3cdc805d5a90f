package nutrition

import (
	"math"

	"diet-planner/internal/pkg/common"
)

// Status 攝取量相對目標的狀態
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// Progress 單一營養素的追蹤結果
type Progress struct {
	Current float64 `json:"current"`
	Target  int     `json:"target"`
	Percent float64 `json:"percent"`
	Bar     float64 `json:"bar"` // 進度條用，最多 100
	Status  Status  `json:"status"`
}

// Tracker 四種營養素的追蹤結果
type Tracker struct {
	Calories Progress `json:"calories"`
	Protein  Progress `json:"protein"`
	Carbs    Progress `json:"carbs"`
	Fat      Progress `json:"fat"`
}

// Track 比較已選食物總量與目標
func Track(totals common.Macros, goals Goals) Tracker {
	return Tracker{
		Calories: progress(totals.Calories, goals.Calories),
		Protein:  progress(totals.Protein, goals.Protein),
		Carbs:    progress(totals.Carbs, goals.Carbs),
		Fat:      progress(totals.Fat, goals.Fat),
	}
}

func progress(current float64, target int) Progress {
	p := Progress{Current: common.Round1(current), Target: target, Status: StatusDanger}
	if target <= 0 {
		return p
	}
	pct := current / float64(target) * 100
	p.Percent = common.Round1(pct)
	p.Bar = common.Round1(math.Min(pct, 100))
	p.Status = statusFor(pct)
	return p
}

// statusFor 90-110% 為 good，80-120% 為 warning，其餘為 danger
func statusFor(pct float64) Status {
	switch {
	case pct >= 90 && pct <= 110:
		return StatusGood
	case pct >= 80 && pct <= 120:
		return StatusWarning
	default:
		return StatusDanger
	}
}
