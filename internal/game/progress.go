package game

import "fmt"

// Per-answer and per-grade progression rewards.
const (
	educationPerCorrect        = 10
	educationPerCorrectBoosted = 15
	happinessPerCorrect        = 5
	happinessPerWrong          = 3

	educationPerGrade = 50
	hcPerGrade        = 100
	hcPerGradeBonus   = 110
	rublesPerGradeMul = 50

	questionsPerGradeFree    = 10
	questionsPerGradePremium = 5

	aiHelperEducationCost = 20

	HousePrice            = 50_000
	houseHappinessBonus   = 20
	PartnerMinAge         = 18
	partnerHappinessBonus = 15
)

// QuestionsPerGrade is the round length for one grade. Premium halves it.
func QuestionsPerGrade(premiumActive bool) int {
	if premiumActive {
		return questionsPerGradePremium
	}
	return questionsPerGradeFree
}

// ApplyAnswer scores a submitted answer. A correct answer raises education
// (more with the education boost upgrade) and happiness; a wrong one costs
// happiness. The caller owns the feedback delay before the round advances.
func ApplyAnswer(r Record, q Question, selected int) (Record, bool) {
	correct := selected == q.Answer
	if correct {
		gain := educationPerCorrect
		if r.Upgrades.EducationBoost {
			gain = educationPerCorrectBoosted
		}
		r.Education += gain
		r.Happiness = clampStat(r.Happiness + happinessPerCorrect)
	} else {
		r.Happiness = clampStat(r.Happiness - happinessPerWrong)
	}
	return r, correct
}

// GradeOutcome says where a completed grade sends the player.
type GradeOutcome int

const (
	// OutcomeNextGrade keeps schooling going with a fresh round.
	OutcomeNextGrade GradeOutcome = iota
	// OutcomeCareerChoice is reaching the end of grade 9.
	OutcomeCareerChoice
	// OutcomeSchoolDone is finishing grade 11.
	OutcomeSchoolDone
)

// CompleteGrade resolves the end of a round. Interior grades pay out the
// grade rewards and move the player up a year; the grade 9 and grade 11
// boundaries only route to the career choice or adult life, leaving the
// record for ChooseCareer / ContinueStudies to update.
func CompleteGrade(r Record) (Record, GradeOutcome) {
	next := r.Grade + 1
	switch {
	case next == CareerChoiceGrade:
		return r, OutcomeCareerChoice
	case next > FinalGrade:
		return r, OutcomeSchoolDone
	}

	old := r.Grade
	r.Grade = next
	r.Age++
	r.Education += educationPerGrade
	if r.Upgrades.HCBonus {
		r.HCCoins += hcPerGradeBonus
	} else {
		r.HCCoins += hcPerGrade
	}
	r.Rubles += old * rublesPerGradeMul
	r.CurrentTask = gradeTask(next)
	return r, OutcomeNextGrade
}

// ChooseCareer ends schooling with a job. Unknown careers are rejected as a
// no-op so a garbled action cannot corrupt the record.
func ChooseCareer(r Record, c Career) (Record, bool) {
	info, ok := CareerByID(c)
	if !ok {
		return r, false
	}
	r.Career = c
	r.Money = info.BaseSalary
	r.CurrentTask = "Build a career and a life"
	return r, true
}

// ContinueStudies is the one permitted grade jump: straight from the career
// choice into grade 10.
func ContinueStudies(r Record) Record {
	r.Grade = CareerChoiceGrade
	r.CurrentTask = "Finish school"
	return r
}

// UseAIHelper spends education to reveal the current answer. Requires the
// aiHelper upgrade and enough education; otherwise a silent no-op.
func UseAIHelper(r Record) (Record, bool) {
	if !r.Upgrades.AIHelper || r.Education < aiHelperEducationCost {
		return r, false
	}
	r.Education -= aiHelperEducationCost
	return r, true
}

// BuyHouse spends money on the house milestone. One-way: owning a house
// already, or short funds, rejects as a no-op.
func BuyHouse(r Record) (Record, bool) {
	if r.HasHouse || r.Money < HousePrice {
		return r, false
	}
	r.Money -= HousePrice
	r.HasHouse = true
	r.Happiness = clampStat(r.Happiness + houseHappinessBonus)
	return r, true
}

// FindPartner unlocks the partner milestone once the player is an adult.
func FindPartner(r Record) (Record, bool) {
	if r.HasPartner || r.Age < PartnerMinAge {
		return r, false
	}
	r.HasPartner = true
	r.Happiness = clampStat(r.Happiness + partnerHappinessBonus)
	return r, true
}

func gradeTask(grade int) string {
	return fmt.Sprintf("Complete grade %d", grade)
}
