package visitor_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"

	"github.com/frahmantamala/visitor-management/internal"
	visitorDatamodel "github.com/frahmantamala/visitor-management/internal/core/datamodel/visitor"
	"github.com/frahmantamala/visitor-management/internal/core/events"
	"github.com/frahmantamala/visitor-management/internal/photo"
	"github.com/frahmantamala/visitor-management/internal/visitor"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
)

type mockVisitorRepository struct {
	rows       []*visitorDatamodel.Visitor
	createErr  error
	listErr    error
	approveErr error
}

func (m *mockVisitorRepository) Create(_ context.Context, v *visitorDatamodel.Visitor) error {
	if m.createErr != nil {
		return m.createErr
	}
	v.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, v)
	return nil
}

func (m *mockVisitorRepository) ListAll(_ context.Context) ([]*visitorDatamodel.Visitor, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows, nil
}

func (m *mockVisitorRepository) Approve(_ context.Context, id int64) (bool, error) {
	if m.approveErr != nil {
		return false, m.approveErr
	}
	for _, row := range m.rows {
		if row.ID == id && row.Status == string(visitor.StatusPending) {
			row.Status = string(visitor.StatusApproved)
			return true, nil
		}
	}
	return false, nil
}

// recordingBus collects published event types.
type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func validVisitorDTO() visitor.CreateVisitorDTO {
	return visitor.CreateVisitorDTO{
		FullName:         "Jane Doe",
		ContactInfo:      "jane@example.com",
		PurposeOfVisit:   "Interview",
		HostEmployeeName: "Bob",
		HostDepartment:   "Engineering",
	}
}

var _ = Describe("Visitor Service", func() {
	var (
		repo    *mockVisitorRepository
		fs      afero.Fs
		bus     *recordingBus
		service *visitor.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = &mockVisitorRepository{}
		fs = afero.NewMemMapFs()
		bus = &recordingBus{}
		service = visitor.NewService(repo, photo.NewStoreWithFs(fs), bus, slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = internal.ContextWithUsername(context.Background(), "alice")
	})

	Describe("CreateVisitor", func() {
		It("stores a pending record without a photo", func() {
			v, err := service.CreateVisitor(ctx, validVisitorDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(v.ID).To(Equal(int64(1)))
			Expect(v.Status).To(Equal(visitor.StatusPending))
			Expect(v.PhotoPath).To(BeNil())
			Expect(v.CheckInTime).NotTo(BeZero())
			Expect(repo.rows[0].CompanyName).To(Equal(""))
		})

		It("decodes and stores a photo", func() {
			dto := validVisitorDTO()
			dto.Photo = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))

			v, err := service.CreateVisitor(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.PhotoPath).NotTo(BeNil())
			Expect(*v.PhotoPath).To(Equal("Jane_Doe.jpg"))

			data, err := afero.ReadFile(fs, "Jane_Doe.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("jpeg-bytes"))
		})

		DescribeTable("drops malformed photos and still creates the record",
			func(payload string) {
				dto := validVisitorDTO()
				dto.Photo = payload

				v, err := service.CreateVisitor(ctx, dto)
				Expect(err).NotTo(HaveOccurred())
				Expect(v.PhotoPath).To(BeNil())
				Expect(repo.rows).To(HaveLen(1))
				Expect(repo.rows[0].PhotoPath).To(BeNil())
			},
			Entry("no metadata prefix", base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))),
			Entry("invalid base64", "data:image/jpeg;base64,@@@not-base64@@@"),
		)

		It("drops a photo whose name would leave the upload directory", func() {
			dto := validVisitorDTO()
			dto.FullName = "../../etc/passwd"
			dto.Photo = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

			v, err := service.CreateVisitor(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.PhotoPath).To(BeNil())
		})

		It("publishes a created event naming the creator", func() {
			_, err := service.CreateVisitor(ctx, validVisitorDTO())
			Expect(err).NotTo(HaveOccurred())

			Expect(bus.published).To(HaveLen(1))
			created, ok := bus.published[0].(*events.VisitorCreatedEvent)
			Expect(ok).To(BeTrue())
			Expect(created.CreatedBy).To(Equal("alice"))
			Expect(created.VisitorID).To(Equal(int64(1)))
		})

		It("rejects missing required fields", func() {
			dto := validVisitorDTO()
			dto.HostDepartment = ""

			_, err := service.CreateVisitor(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.GetDetailedMessage()).To(ContainSubstring("host_department"))
			Expect(repo.rows).To(BeEmpty())
		})

		It("reports store failures as internal errors", func() {
			repo.createErr = errors.New("disk full")
			_, err := service.CreateVisitor(ctx, validVisitorDTO())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(bus.published).To(BeEmpty())
		})
	})

	Describe("ListVisitors", func() {
		It("returns summaries in store order", func() {
			first := validVisitorDTO()
			second := validVisitorDTO()
			second.FullName = "John Roe"
			_, err := service.CreateVisitor(ctx, first)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateVisitor(ctx, second)
			Expect(err).NotTo(HaveOccurred())

			list, err := service.ListVisitors(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].FullName).To(Equal("Jane Doe"))
			Expect(list[1].FullName).To(Equal("John Roe"))
		})

		It("returns an empty slice when there are no visitors", func() {
			list, err := service.ListVisitors(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).NotTo(BeNil())
			Expect(list).To(BeEmpty())
		})
	})

	Describe("ApproveVisitor", func() {
		BeforeEach(func() {
			_, err := service.CreateVisitor(ctx, validVisitorDTO())
			Expect(err).NotTo(HaveOccurred())
			bus.published = nil
		})

		It("approves a pending visitor once", func() {
			Expect(service.ApproveVisitor(ctx, 1)).To(Succeed())
			Expect(repo.rows[0].Status).To(Equal("approved"))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeVisitorApproved))

			Expect(service.ApproveVisitor(ctx, 1)).To(Succeed())
			Expect(repo.rows[0].Status).To(Equal("approved"))
			Expect(bus.published).To(HaveLen(1))
		})

		It("treats an unknown id as a no-op", func() {
			Expect(service.ApproveVisitor(ctx, 999)).To(Succeed())
			Expect(bus.published).To(BeEmpty())
		})

		It("reports store failures as internal errors", func() {
			repo.approveErr = errors.New("locked")
			err := service.ApproveVisitor(ctx, 1)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})
})
