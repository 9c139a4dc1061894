package export_test

import (
	"encoding/csv"
	"strings"

	"procintel/internal/export"
	"procintel/internal/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CombinedCSV", func() {
	procurements := []models.Procurement{
		{
			Agency:              "DOE",
			ServicesDescription: "Parking Services",
			ProcurementMethod:   "Competitive Sealed Bid",
			FiscalQuarter:       "Q2",
			JobTitles:           "Project Manager",
			HeadCount:           "3",
		},
	}
	awards := []models.Award{
		{
			Agency:      "DOT",
			Title:       "Bridge Repair",
			AwardDate:   "11/18/2024",
			Description: "East span rehabilitation.",
			Category:    "Construction",
		},
	}

	parse := func(data []byte) [][]string {
		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		return records
	}

	It("writes a header row and one row per record", func() {
		data, err := export.CombinedCSV(procurements, awards)
		Expect(err).NotTo(HaveOccurred())

		records := parse(data)
		Expect(records).To(HaveLen(3))
		Expect(records[0]).To(Equal([]string{
			"Agency", "Services Description", "Procurement Method", "Fiscal Quarter",
			"Job Titles", "Head-count", "Title", "Award Date", "Description", "Category",
		}))
	})

	It("fills columns missing from a row's collection with N/A", func() {
		data, err := export.CombinedCSV(procurements, awards)
		Expect(err).NotTo(HaveOccurred())

		records := parse(data)
		procRow := records[1]
		Expect(procRow[0]).To(Equal("DOE"))
		Expect(procRow[1]).To(Equal("Parking Services"))
		Expect(procRow[6]).To(Equal("N/A")) // Title
		Expect(procRow[9]).To(Equal("N/A")) // Category

		awardRow := records[2]
		Expect(awardRow[0]).To(Equal("DOT"))
		Expect(awardRow[1]).To(Equal("N/A")) // Services Description
		Expect(awardRow[6]).To(Equal("Bridge Repair"))
		Expect(awardRow[7]).To(Equal("11/18/2024"))
	})

	It("puts procurement rows before award rows", func() {
		data, err := export.CombinedCSV(procurements, awards)
		Expect(err).NotTo(HaveOccurred())

		records := parse(data)
		Expect(records[1][1]).To(Equal("Parking Services"))
		Expect(records[2][6]).To(Equal("Bridge Repair"))
	})

	It("produces only the header for empty inputs", func() {
		data, err := export.CombinedCSV(nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(parse(data)).To(HaveLen(1))
	})
})
