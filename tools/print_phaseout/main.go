// Command print_phaseout prints how the income-limited credits shrink as AGI rises,
// for checking table overrides by eye.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/taxwizard/tax-estimator/internal/calculation"
	"github.com/taxwizard/tax-estimator/internal/config"
	"github.com/taxwizard/tax-estimator/internal/domain"
	"github.com/taxwizard/tax-estimator/pkg/dateutil"
	money "github.com/taxwizard/tax-estimator/pkg/decimal"
)

func main() {
	status := flag.String("status", "married_joint", "filing status")
	fromFlag := flag.String("from", "0", "first AGI")
	toFlag := flag.String("to", "450,000", "last AGI")
	stepFlag := flag.String("step", "10,000", "AGI step")
	tablesPath := flag.String("tables", "", "tax table override YAML")
	flag.Parse()

	fs, err := domain.ParseFilingStatus(*status)
	if err != nil {
		log.Fatal(err)
	}
	from := money.ParseOrZero(*fromFlag)
	to := money.ParseOrZero(*toFlag)
	step := money.ParseOrZero(*stepFlag)
	if !step.IsPositive() {
		log.Fatal("step must be positive")
	}

	tables := calculation.NewTaxTables2024()
	if *tablesPath != "" {
		cfg, err := config.NewInputParser().LoadTablesFromFile(*tablesPath)
		if err != nil {
			log.Fatal(err)
		}
		tables = calculation.NewTaxTablesWithConfig(cfg)
	}
	cc := calculation.NewCreditCalculator(tables)

	// Two children under 13 and a dependent parent
	yearEnd := dateutil.TaxYearEnd(tables.Year())
	dependents := []domain.Dependent{
		{Name: "child1", DateOfBirth: yearEnd.AddDate(-5, 0, 0), IsQualifyingChild: true},
		{Name: "child2", DateOfBirth: yearEnd.AddDate(-8, 0, 0), IsQualifyingChild: true},
		{Name: "parent", DateOfBirth: yearEnd.AddDate(-75, 0, 0)},
	}
	education := domain.EducationExpenses{AOTCStudentExpenses: []decimal.Decimal{decimal.NewFromInt(4000)}}
	careExpenses := decimal.NewFromInt(6000)
	contributions := decimal.NewFromInt(4000)

	fmt.Printf("Credit phase-outs for %s (%d tables)\n\n", fs.Label(), tables.Year())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "AGI\tCTC\tODC\tCare\tAOTC\tSaver's\t")
	for a := from; a.LessThanOrEqual(to); a = a.Add(step) {
		ctc, odc := cc.ChildCredits(dependents, a, fs, yearEnd)
		care := cc.CalculateChildDependentCareCredit(careExpenses, a, cc.CountCareQualifyingDependents(dependents, yearEnd))
		aotc, _ := cc.CalculateEducationCredits(education, a, fs)
		savers := cc.CalculateRetirementSavingsCredit(contributions, a, fs, fs.IsJoint())
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n", a.StringFixed(0),
			ctc.StringFixed(2), odc.StringFixed(2), care.StringFixed(2), aotc.StringFixed(2), savers.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}
