package common

import "math"

// Macros 熱量與三大營養素
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add 回傳兩組營養素相加的結果
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Round 四捨五入到小數點後一位
func (m Macros) Round() Macros {
	return Macros{
		Calories: Round1(m.Calories),
		Protein:  Round1(m.Protein),
		Carbs:    Round1(m.Carbs),
		Fat:      Round1(m.Fat),
	}
}

// Round1 四捨五入到小數點後一位
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
