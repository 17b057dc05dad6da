package model

import (
	"strconv"
	"strings"
)

// Widget is the input control a field is rendered with.
type Widget string

const (
	WidgetSelect Widget = "select"
	WidgetSlider Widget = "slider"
	WidgetNumber Widget = "number"
)

// FieldSpec describes one numeric applicant field: its reference name, how
// the form renders it and the range it accepts.
type FieldSpec struct {
	Name    string
	Label   string
	Widget  Widget
	Options []float64
	Min     float64
	Max     float64
	Step    float64
	Default float64
	HasMax  bool
	Integer bool
}

// Fields returns the numeric field catalogue in form order.
func Fields() []FieldSpec {
	d := DefaultLoanApplicant()
	return []FieldSpec{
		{Name: FeatureCreditPolicy, Label: "Credit Policy (Meets Lending Criteria?)", Widget: WidgetSelect,
			Options: []float64{1, 0}, Min: 0, Max: 1, HasMax: true, Step: 1, Integer: true, Default: float64(d.CreditPolicy)},
		{Name: FeatureIntRate, Label: "Interest Rate (%)", Widget: WidgetSlider,
			Min: 5.0, Max: 30.0, HasMax: true, Step: 0.01, Default: d.IntRate},
		{Name: FeatureInstallment, Label: "Installment Amount", Widget: WidgetNumber,
			Min: 0, Step: 0.01, Default: d.Installment.InexactFloat64()},
		{Name: FeatureLogAnnualInc, Label: "Log of Annual Income", Widget: WidgetNumber,
			Min: 0, Step: 0.01, Default: d.LogAnnualInc},
		{Name: FeatureDTI, Label: "Debt-to-Income Ratio", Widget: WidgetSlider,
			Min: 0, Max: 50.0, HasMax: true, Step: 0.01, Default: d.DTI},
		{Name: FeatureFICO, Label: "FICO Credit Score", Widget: WidgetSlider,
			Min: 300, Max: 850, HasMax: true, Step: 1, Integer: true, Default: float64(d.FICO)},
		{Name: FeatureDaysWithCrLine, Label: "Days with Credit Line", Widget: WidgetNumber,
			Min: 0, Step: 1, Default: d.DaysWithCrLine},
		{Name: FeatureRevolBal, Label: "Revolving Balance", Widget: WidgetNumber,
			Min: 0, Step: 1, Default: d.RevolBal.InexactFloat64()},
		{Name: FeatureRevolUtil, Label: "Revolving Line Utilization Rate (%)", Widget: WidgetSlider,
			Min: 0, Max: 150.0, HasMax: true, Step: 0.1, Default: d.RevolUtil},
		{Name: FeatureInqLast6Mths, Label: "Inquiries in Last 6 Months", Widget: WidgetSlider,
			Min: 0, Max: 10, HasMax: true, Step: 1, Integer: true, Default: float64(d.InqLast6Mths)},
		{Name: FeatureDelinq2Yrs, Label: "Delinquencies in Last 2 Years", Widget: WidgetSlider,
			Min: 0, Max: 10, HasMax: true, Step: 1, Integer: true, Default: float64(d.Delinq2Yrs)},
		{Name: FeaturePubRec, Label: "Number of Public Records", Widget: WidgetSlider,
			Min: 0, Max: 5, HasMax: true, Step: 1, Integer: true, Default: float64(d.PubRec)},
	}
}

// FieldByName looks up a field spec by its reference name.
func FieldByName(name string) (FieldSpec, bool) {
	for _, f := range Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func (s FieldSpec) allows(v float64) bool {
	for _, o := range s.Options {
		if o == v {
			return true
		}
	}
	return false
}

func (s FieldSpec) optionList() string {
	parts := make([]string, 0, len(s.Options))
	for _, o := range s.Options {
		parts = append(parts, strconv.FormatFloat(o, 'f', -1, 64))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
