package v1

import (
	"io"
	"net/http"

	"github.com/ThotaNithin79/Billing-Application/internal/api/dto"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/s3"
	"github.com/ThotaNithin79/Billing-Application/internal/service"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	service     service.BillService
	history     service.HistoryService
	attachments s3.Service
	log         *logger.Logger
}

func NewBillHandler(
	service service.BillService,
	history service.HistoryService,
	attachments s3.Service,
	log *logger.Logger,
) *BillHandler {
	return &BillHandler{
		service:     service,
		history:     history,
		attachments: attachments,
		log:         log,
	}
}

// uploadAttachment stores the uploaded file for the given stage and returns
// its reference. Requests without a file yield an empty reference; the caller
// decides whether the slot stays as is.
func (h *BillHandler) uploadAttachment(c *gin.Context, field string, stage types.AttachmentStage) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		// JSON requests and multipart requests without the field both land
		// here; neither carries a file.
		return "", nil
	}

	if h.attachments == nil {
		return "", ierr.NewError("attachment storage is not configured").
			WithHint("File uploads are disabled on this deployment").
			Mark(ierr.ErrInvalidOperation)
	}

	f, err := file.Open()
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Could not read the uploaded file").
			Mark(ierr.ErrValidation)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Could not read the uploaded file").
			Mark(ierr.ErrValidation)
	}

	return h.attachments.Upload(c.Request.Context(), &s3.Attachment{
		FileName: file.Filename,
		Stage:    stage,
		Data:     data,
	})
}

// @Summary Raise a bill
// @Description Create a bill in the RAISED stage, optionally with a work order file
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param bill body dto.RaiseBillRequest true "Bill"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req dto.RaiseBillRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	ref, err := h.uploadAttachment(c, "work_order", types.AttachmentStageWorkOrder)
	if err != nil {
		c.Error(err)
		return
	}
	if ref != "" {
		req.WorkOrderAttachment = ref
	}

	resp, err := h.service.RaiseBill(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Update a bill before approval
// @Description Planner correction of a raised or rejected bill
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bill ID"
// @Param bill body dto.PlannerUpdateRequest true "Bill"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/planner-update [put]
func (h *BillHandler) UpdateByPlanner(c *gin.Context) {
	var req dto.PlannerUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	ref, err := h.uploadAttachment(c, "work_order", types.AttachmentStageWorkOrder)
	if err != nil {
		c.Error(err)
		return
	}
	if ref != "" {
		req.WorkOrderAttachment = ref
	}

	resp, err := h.service.CorrectByPlanner(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Clone a bill
// @Description Create a fresh bill seeded from an existing one
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Source bill ID"
// @Param bill body dto.CloneBillRequest true "Bill"
// @Success 201 {object} dto.BillResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /bills/{id}/clone [post]
func (h *BillHandler) CloneBill(c *gin.Context) {
	var req dto.CloneBillRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	ref, err := h.uploadAttachment(c, "work_order", types.AttachmentStageWorkOrder)
	if err != nil {
		c.Error(err)
		return
	}
	if ref != "" {
		req.WorkOrderAttachment = ref
	}

	resp, err := h.service.CloneBill(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

type stageAction func(c *gin.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error)

// handleStageAction binds the shared advance/correct request shape, uploads
// the stage's file if one came along, and runs the operation.
func (h *BillHandler) handleStageAction(c *gin.Context, stage types.AttachmentStage, action stageAction) {
	var req dto.StageActionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	ref, err := h.uploadAttachment(c, "attachment", stage)
	if err != nil {
		c.Error(err)
		return
	}
	if ref != "" {
		req.AttachmentRef = ref
	}

	resp, err := action(c, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Create the receiving order
// @Description Advance a raised bill to RO_CREATED
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/ro-create [patch]
func (h *BillHandler) CreateRO(c *gin.Context) {
	h.handleStageAction(c, types.AttachmentStageRO, func(c *gin.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
		return h.service.AdvanceToRO(c.Request.Context(), id, req)
	})
}

// @Summary Update the receiving order
// @Description Correct the RO data, also recovering from RO_REJECTED
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/ro-update [patch]
func (h *BillHandler) UpdateRO(c *gin.Context) {
	h.handleStageAction(c, types.AttachmentStageRO, func(c *gin.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
		return h.service.CorrectRO(c.Request.Context(), id, req)
	})
}

// @Summary Create the invoice
// @Description Advance the bill to INVOICE_CREATED
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/invoice-create [patch]
func (h *BillHandler) CreateInvoice(c *gin.Context) {
	h.handleStageAction(c, types.AttachmentStageInvoice, func(c *gin.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
		return h.service.AdvanceToInvoice(c.Request.Context(), id, req)
	})
}

// @Summary Update the invoice
// @Description Correct the invoice data, also recovering from INVOICE_REJECTED
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/invoice-update [patch]
func (h *BillHandler) UpdateInvoice(c *gin.Context) {
	h.handleStageAction(c, types.AttachmentStageInvoice, func(c *gin.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
		return h.service.CorrectInvoice(c.Request.Context(), id, req)
	})
}

// @Summary Create the e-invoice
// @Description Advance the bill to the terminal EINVOICE_CREATED stage
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/e-invoice-create [patch]
func (h *BillHandler) CreateEInvoice(c *gin.Context) {
	h.handleStageAction(c, types.AttachmentStageEInvoice, func(c *gin.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
		return h.service.AdvanceToEInvoice(c.Request.Context(), id, req)
	})
}

// @Summary Update the e-invoice
// @Description Correct the e-invoice data in place
// @Tags Bills
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/e-invoice-update [patch]
func (h *BillHandler) UpdateEInvoice(c *gin.Context) {
	h.handleStageAction(c, types.AttachmentStageEInvoice, func(c *gin.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
		return h.service.CorrectEInvoice(c.Request.Context(), id, req)
	})
}

type rejectAction func(c *gin.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error)

func (h *BillHandler) handleReject(c *gin.Context, action rejectAction) {
	var req dto.RejectBillRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := action(c, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Reject a raised bill
// @Tags Bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param rejection body dto.RejectBillRequest true "Rejection"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/reject-bill [patch]
func (h *BillHandler) RejectBill(c *gin.Context) {
	h.handleReject(c, func(c *gin.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error) {
		return h.service.RejectRaisedBill(c.Request.Context(), id, req)
	})
}

// @Summary Reject the receiving order
// @Tags Bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param rejection body dto.RejectBillRequest true "Rejection"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/reject-ro [patch]
func (h *BillHandler) RejectRO(c *gin.Context) {
	h.handleReject(c, func(c *gin.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error) {
		return h.service.RejectRO(c.Request.Context(), id, req)
	})
}

// @Summary Reject the invoice
// @Tags Bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param rejection body dto.RejectBillRequest true "Rejection"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 423 {object} ierr.ErrorResponse
// @Router /bills/{id}/reject-invoice [patch]
func (h *BillHandler) RejectInvoice(c *gin.Context) {
	h.handleReject(c, func(c *gin.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error) {
		return h.service.RejectInvoice(c.Request.Context(), id, req)
	})
}

// @Summary Set the activity status
// @Description Put a bill on HOLD or release it back to ACTIVE
// @Tags Bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param status body dto.UpdateActivityStatusRequest true "Activity status"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /bills/{id}/status [patch]
func (h *BillHandler) UpdateActivityStatus(c *gin.Context) {
	var req dto.UpdateActivityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SetActivityStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a bill
// @Tags Bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	resp, err := h.service.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List bills
// @Tags Bills
// @Produce json
// @Param workflow_status query string false "Workflow status"
// @Param activity_status query string false "Activity status"
// @Param client_name query string false "Client name"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListBillsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /bills [get]
func (h *BillHandler) ListBills(c *gin.Context) {
	var filter types.BillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if err := filter.Validate(); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListBills(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a bill's detailed history
// @Description Every recorded revision of the bill, newest first
// @Tags Bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {array} dto.BillHistoryEntryResponse
// @Router /bills/{id}/detailed-history [get]
func (h *BillHandler) GetDetailedHistory(c *gin.Context) {
	resp, err := h.history.GetBillHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
