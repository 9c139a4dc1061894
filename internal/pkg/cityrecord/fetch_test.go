package cityrecord_test

import (
	"net/url"
	"strconv"
	"time"

	"procintel/internal/pkg/cityrecord"
	"procintel/internal/testhelpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// The origin rejects a trimmed SectionName, so the expected form carries the
// exact whitespace blob the site's own form posts back.
const sectionNameBlob = "\r\n                                                \r\n                                                    \r\n                                                \r\n                                                Procurement\r\n                                            "

func listingForm(page int) url.Values {
	form := url.Values{}
	form.Set("SectionId", "6")
	form.Set("SectionName", sectionNameBlob)
	form.Set("NoticeTypeId", "0")
	form.Set("PageNumber", strconv.Itoa(page))
	return form
}

var _ = Describe("Client", func() {
	const baseURL = "https://a856-cityrecord.nyc.gov"

	var client *cityrecord.Client

	BeforeEach(func() {
		client = cityrecord.New(baseURL, "ak_bmsc=test-cookie", "test-agent", 5*time.Second)
		testhelpers.Activate()
		client.UseDefaultClient()
	})

	AfterEach(func() {
		testhelpers.Deactivate()
	})

	Describe("FetchPage", func() {
		It("POSTs the exact listing form and returns the body", func() {
			testhelpers.New(baseURL).
				Post("/Section").BodyForm(listingForm(1)).Reply(200).
				BodyString("<html><body>page one</body></html>").
				Header("Content-Type", "text/html")

			body, err := client.FetchPage(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(ContainSubstring("page one"))
			Expect(testhelpers.IsDone()).To(BeTrue())
		})

		It("sends the requested page number", func() {
			testhelpers.New(baseURL).
				Post("/Section").BodyForm(listingForm(17)).Reply(200).
				BodyString("<html><body>page seventeen</body></html>")

			body, err := client.FetchPage(17)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(ContainSubstring("page seventeen"))
			Expect(testhelpers.IsDone()).To(BeTrue())
		})

		It("returns an error for a non-200 response", func() {
			testhelpers.New(baseURL).
				Post("/Section").Reply(503).
				BodyString("upstream unavailable")

			_, err := client.FetchPage(1)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("503"))
		})
	})

	Describe("FetchAllPages", func() {
		It("increments the 1-indexed page number per request", func() {
			testhelpers.New(baseURL).
				Post("/Section").BodyForm(listingForm(1)).Reply(200).
				BodyString("<html><body>page one</body></html>")
			testhelpers.New(baseURL).
				Post("/Section").BodyForm(listingForm(2)).Reply(200).
				BodyString("<html><body>page two</body></html>")
			testhelpers.New(baseURL).
				Post("/Section").BodyForm(listingForm(3)).Reply(200).
				BodyString("<html><body>page three</body></html>")

			docs, transportErrors := client.FetchAllPages(3)
			Expect(docs).To(HaveLen(3))
			Expect(transportErrors).To(BeZero())
			Expect(string(docs[0])).To(ContainSubstring("page one"))
			Expect(string(docs[1])).To(ContainSubstring("page two"))
			Expect(string(docs[2])).To(ContainSubstring("page three"))
			Expect(testhelpers.IsDone()).To(BeTrue())
		})

		It("keeps going past a failed page", func() {
			testhelpers.New(baseURL).
				Post("/Section").BodyForm(listingForm(1)).Reply(200).
				BodyString("<html><body>page one</body></html>")
			testhelpers.New(baseURL).
				Post("/Section").BodyForm(listingForm(2)).Reply(500).
				BodyString("boom")
			testhelpers.New(baseURL).
				Post("/Section").BodyForm(listingForm(3)).Reply(200).
				BodyString("<html><body>page three</body></html>")

			docs, transportErrors := client.FetchAllPages(3)
			Expect(docs).To(HaveLen(3))
			Expect(transportErrors).To(Equal(1))
			Expect(string(docs[0])).To(ContainSubstring("page one"))
			Expect(docs[1]).To(BeNil())
			Expect(string(docs[2])).To(ContainSubstring("page three"))
			Expect(testhelpers.IsDone()).To(BeTrue())
		})
	})
})
