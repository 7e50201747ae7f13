// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"math"
	"sort"

	"github.com/rmedina/expovote/catalog"
	"github.com/rmedina/expovote/models"
)

// Compute aggregates evaluations per catalog project, in catalog order.
// Projects without votes appear with zeroed stats so the dashboard always
// shows the full lineup.
func Compute(evals []models.Evaluation) []models.ProjectStats {
	byProject := make(map[string][]models.Evaluation)
	for _, e := range evals {
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e)
	}

	projects := catalog.All()
	out := make([]models.ProjectStats, 0, len(projects))
	for _, p := range projects {
		pe := byProject[p.ID]
		st := models.ProjectStats{ID: p.ID, Name: p.Name, TotalVotes: len(pe)}
		if len(pe) == 0 {
			out = append(out, st)
			continue
		}

		var sumInn, sumDes, sumFun int
		for _, e := range pe {
			sumInn += e.Innovation
			sumDes += e.Design
			sumFun += e.Functionality
			if e.WouldPay {
				st.PayYes++
			}
		}
		total := float64(len(pe))
		st.AvgInnovation = round1(float64(sumInn) / total)
		st.AvgDesign = round1(float64(sumDes) / total)
		st.AvgFunctionality = round1(float64(sumFun) / total)
		st.PayNo = st.TotalVotes - st.PayYes
		out = append(out, st)
	}
	return out
}

// Score ranks a project: mean of the three averages plus up to two bonus
// points for purchase intent. Zero-vote projects score zero.
func Score(st models.ProjectStats) float64 {
	if st.TotalVotes == 0 {
		return 0
	}
	return (st.AvgInnovation+st.AvgDesign+st.AvgFunctionality)/3 +
		float64(st.PayYes)/float64(st.TotalVotes)*2
}

// Ranked returns stats sorted best-first by Score.
func Ranked(evals []models.Evaluation) []models.ProjectStats {
	out := Compute(evals)
	sort.SliceStable(out, func(i, j int) bool {
		return Score(out[i]) > Score(out[j])
	})
	return out
}

// round1 keeps one decimal, matching the dashboard display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
