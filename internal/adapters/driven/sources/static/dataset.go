package static

import "github.com/custodia-labs/lexai/internal/core/domain"

// sampleCases is the built-in offline dataset. The first five entries are
// the original sample set; the rest cover common delict and criminal queries.
var sampleCases = []domain.CaseResult{
	{
		ID:         "1",
		Title:      "Minister of Police v Mboweni",
		Citation:   "[2023] ZACC 12",
		Court:      "Constitutional Court",
		Date:       "15 May 2023",
		Summary:    "Deals with state liability for actions of police officers while on duty.",
		Tags:       []string{"Constitutional Law", "State Liability"},
		SourceLink: "http://www.saflii.org/za/cases/ZACC/2023/12.html",
		Judge:      "Mogoeng CJ",
	},
	{
		ID:         "2",
		Title:      "ABC Investments v Commissioner of SARS",
		Citation:   "[2023] ZASCA 47",
		Court:      "Supreme Court of Appeal",
		Date:       "3 April 2023",
		Summary:    "Tax assessment dispute regarding capital gains calculations.",
		Tags:       []string{"Tax Law", "Capital Gains"},
		SourceLink: "http://www.saflii.org/za/cases/ZASCA/2023/47.html",
		Judge:      "Ponnan JA",
	},
	{
		ID:         "3",
		Title:      "Smith v City of Cape Town",
		Citation:   "[2023] ZAWCHC 32",
		Court:      "Western Cape High Court",
		Date:       "22 March 2023",
		Summary:    "Property dispute over municipal zoning regulations.",
		Tags:       []string{"Property Law", "Municipal Law"},
		SourceLink: "http://www.saflii.org/za/cases/ZAWCHC/2023/32.html",
		Judge:      "Binns-Ward J",
	},
	{
		ID:         "4",
		Title:      "Naidoo v Transnet Ltd",
		Citation:   "[2023] ZALAC 15",
		Court:      "Labour Appeal Court",
		Date:       "10 June 2023",
		Summary:    "Unfair dismissal case involving misconduct allegations.",
		Tags:       []string{"Labour Law", "Unfair Dismissal"},
		SourceLink: "http://www.saflii.org/za/cases/ZALAC/2023/15.html",
		Judge:      "Davis JP",
	},
	{
		ID:         "5",
		Title:      "Kruger v Standard Bank",
		Citation:   "[2023] ZAGPPHC 74",
		Court:      "Gauteng High Court",
		Date:       "2 July 2023",
		Summary:    "Banking dispute regarding credit facility terms.",
		Tags:       []string{"Banking Law", "Contract Law"},
		SourceLink: "http://www.saflii.org/za/cases/ZAGPPHC/2023/74.html",
		Judge:      "Meyer J",
	},
	{
		ID:         "6",
		Title:      "Lee v Minister for Correctional Services",
		Citation:   "[2012] ZACC 30",
		Court:      "Constitutional Court",
		Date:       "11 December 2012",
		Summary:    "Negligence claim by a prisoner who contracted tuberculosis; factual causation in delict need not be proved with certainty.",
		Tags:       []string{"Delict", "Negligence", "Causation"},
		SourceLink: "http://www.saflii.org/za/cases/ZACC/2012/30.html",
		Judge:      "Nkabinde J",
	},
	{
		ID:         "7",
		Title:      "Oppelt v Department of Health, Western Cape",
		Citation:   "[2015] ZACC 33",
		Court:      "Constitutional Court",
		Date:       "15 October 2015",
		Summary:    "Medical negligence in delayed spinal treatment; when prescription starts to run for a delictual claim.",
		Tags:       []string{"Medical Negligence", "Delict", "Prescription"},
		SourceLink: "http://www.saflii.org/za/cases/ZACC/2015/33.html",
		Judge:      "Molemela AJ",
	},
	{
		ID:         "8",
		Title:      "Country Cloud Trading CC v MEC, Department of Infrastructure Development",
		Citation:   "[2014] ZACC 28",
		Court:      "Constitutional Court",
		Date:       "3 October 2014",
		Summary:    "Wrongfulness of causing pure economic loss by inducing breach of contract.",
		Tags:       []string{"Delict", "Pure Economic Loss", "Contract Law"},
		SourceLink: "http://www.saflii.org/za/cases/ZACC/2014/28.html",
		Judge:      "Khampepe J",
	},
	{
		ID:         "9",
		Title:      "S v Makwanyane",
		Citation:   "[1995] ZACC 3",
		Court:      "Constitutional Court",
		Date:       "6 June 1995",
		Summary:    "The death penalty is inconsistent with the rights to life and dignity and is unconstitutional.",
		Tags:       []string{"Criminal Law", "Constitutional Law", "Human Rights"},
		SourceLink: "http://www.saflii.org/za/cases/ZACC/1995/3.html",
		Judge:      "Chaskalson P",
	},
}

// Cases returns a copy of the built-in dataset.
func Cases() []domain.CaseResult {
	out := make([]domain.CaseResult, len(sampleCases))
	for i := range sampleCases {
		out[i] = sampleCases[i].Clone()
	}
	return out
}
