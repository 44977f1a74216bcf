package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/KIFUA/Church-Buses/internal/registry"
	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// MemberHandler serves CRUD and photo management for member records.
type MemberHandler struct {
	Store      store.Store
	Registry   *registry.Registry
	UploadsDir string
}

func NewMemberHandler(s store.Store, r *registry.Registry, uploadsDir string) *MemberHandler {
	return &MemberHandler{Store: s, Registry: r, UploadsDir: uploadsDir}
}

type MemberCreateInput struct {
	PIB             string  `json:"pib" binding:"required"`
	Gender          string  `json:"gender"`
	BirthDate       *string `json:"birth_date"`
	PhoneMobile     string  `json:"phone_mobile"`
	PhoneHome       string  `json:"phone_home"`
	Email           string  `json:"email"`
	RepentanceDate  *string `json:"repentance_date"`
	BaptismDate     *string `json:"baptism_date"`
	JoinDate        *string `json:"join_date"`
	MaritalStatusID string  `json:"marital_status_id"`
	SocialStatusID  string  `json:"social_status_id"`
	EducationID     string  `json:"education_id"`
	ProfessionID    string  `json:"profession_id"`
	Notes           string  `json:"notes"`
}

type MemberUpdateInput struct {
	PIB             *string `json:"pib"`
	Gender          *string `json:"gender"`
	BirthDate       *string `json:"birth_date"`
	PhoneMobile     *string `json:"phone_mobile"`
	PhoneHome       *string `json:"phone_home"`
	Email           *string `json:"email"`
	RepentanceDate  *string `json:"repentance_date"`
	BaptismDate     *string `json:"baptism_date"`
	JoinDate        *string `json:"join_date"`
	MaritalStatusID *string `json:"marital_status_id"`
	SocialStatusID  *string `json:"social_status_id"`
	EducationID     *string `json:"education_id"`
	ProfessionID    *string `json:"profession_id"`
	Notes           *string `json:"notes"`
	IsActive        *bool   `json:"is_active"`
}

type memberListItem struct {
	models.Member `bson:",inline"`
	Services      []models.ServiceSummary `json:"services"`
}

// List returns a paginated member list with joined service summaries.
// Query parameters: page, limit, search (substring on pib, case-insensitive),
// active_only (default true), gender, service_type.
func (h *MemberHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	activeOnly := c.DefaultQuery("active_only", "true") != "false"

	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}
	if search := c.Query("search"); search != "" {
		query["pib"] = bson.M{"$regex": search, "$options": "i"}
	}
	if gender := c.Query("gender"); gender != "" {
		query["gender"] = gender
	}

	ctx := c.Request.Context()
	var members []models.Member
	err := h.Store.Find(ctx, store.Members, query, &store.FindOptions{
		Sort:  bson.D{{Key: "pib", Value: 1}},
		Skip:  int64((page - 1) * limit),
		Limit: int64(limit),
	}, &members)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch members"})
		return
	}

	items := make([]memberListItem, 0, len(members))
	for _, m := range members {
		services, err := h.Registry.ServiceSummaries(ctx, m.OriginalID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch members"})
			return
		}
		items = append(items, memberListItem{Member: m, Services: services})
	}

	// The service-type filter is applied after pagination, as a narrowing of
	// the current page. Kept from the legacy behavior.
	if st := c.Query("service_type"); st != "" {
		if serviceType, err := strconv.Atoi(st); err == nil {
			filtered, err := h.filterByServiceType(c, items, serviceType)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch members"})
				return
			}
			items = filtered
		}
	}

	total, err := h.Store.Count(ctx, store.Members, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": items,
		"total":   total,
		"page":    page,
		"pages":   (total + int64(limit) - 1) / int64(limit),
	})
}

func (h *MemberHandler) filterByServiceType(c *gin.Context, items []memberListItem, serviceType int) ([]memberListItem, error) {
	ctx := c.Request.Context()
	var st models.ServiceType
	err := h.Store.FindOne(ctx, store.ServiceTypes, bson.M{"original_id": serviceType}, nil, &st)
	if errors.Is(err, store.ErrNotFound) {
		return items, nil
	}
	if err != nil {
		return nil, err
	}

	ids, err := h.Store.Distinct(ctx, store.Services, "member_original_id", bson.M{"service_type_id": serviceType})
	if err != nil {
		return nil, err
	}
	holders := make(map[int]bool, len(ids))
	for _, id := range ids {
		holders[asInt(id)] = true
	}

	filtered := items[:0]
	for _, item := range items {
		if holders[item.OriginalID] {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Get returns the assembled member view.
func (h *MemberHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	view, err := h.Registry.AssembleMemberView(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch member"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// Create inserts a new member. The id is the current max plus one, and the
// four reference labels plus the gender label are denormalized onto the
// document as a point-in-time snapshot.
func (h *MemberHandler) Create(c *gin.Context) {
	var input MemberCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if input.Gender == "" {
		input.Gender = "male"
	}

	ctx := c.Request.Context()
	nextID, err := h.Registry.NextMemberID(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create member"})
		return
	}

	member := models.Member{
		OriginalID:      nextID,
		PIB:             input.PIB,
		Gender:          input.Gender,
		GenderUkr:       models.GenderLabel(input.Gender),
		BirthDate:       input.BirthDate,
		PhoneMobile:     input.PhoneMobile,
		PhoneHome:       input.PhoneHome,
		Email:           input.Email,
		RepentanceDate:  input.RepentanceDate,
		BaptismDate:     input.BaptismDate,
		JoinDate:        input.JoinDate,
		MaritalStatusID: input.MaritalStatusID,
		SocialStatusID:  input.SocialStatusID,
		EducationID:     input.EducationID,
		ProfessionID:    input.ProfessionID,
		Notes:           input.Notes,
		IsActive:        true,
	}
	member.MaritalStatus = h.Registry.Resolve(ctx, models.RefMaritalStatus, member.MaritalStatusID)
	member.SocialStatus = h.Registry.Resolve(ctx, models.RefSocialStatus, member.SocialStatusID)
	member.Education = h.Registry.Resolve(ctx, models.RefEducation, member.EducationID)
	member.Profession = h.Registry.Resolve(ctx, models.RefProfession, member.ProfessionID)

	if err := h.Store.Insert(ctx, store.Members, member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create member"})
		return
	}
	slog.Info("member created", "original_id", member.OriginalID, "pib", member.PIB)
	c.JSON(http.StatusCreated, member)
}

// Update patches the fields present in the request body. An empty patch is
// rejected. Changing gender refreshes the derived label.
func (h *MemberHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}
	var input MemberUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	patch := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			patch[key] = *v
		}
	}
	setString("pib", input.PIB)
	setString("birth_date", input.BirthDate)
	setString("phone_mobile", input.PhoneMobile)
	setString("phone_home", input.PhoneHome)
	setString("email", input.Email)
	setString("repentance_date", input.RepentanceDate)
	setString("baptism_date", input.BaptismDate)
	setString("join_date", input.JoinDate)
	setString("marital_status_id", input.MaritalStatusID)
	setString("social_status_id", input.SocialStatusID)
	setString("education_id", input.EducationID)
	setString("profession_id", input.ProfessionID)
	setString("notes", input.Notes)
	if input.Gender != nil {
		patch["gender"] = *input.Gender
		patch["gender_ukr"] = models.GenderLabel(*input.Gender)
	}
	if input.IsActive != nil {
		patch["is_active"] = *input.IsActive
	}

	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data to update"})
		return
	}

	matched, err := h.Store.Update(c.Request.Context(), store.Members, bson.M{"original_id": id}, bson.M{"$set": patch})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update member"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

// Deactivate soft-deletes a member: the record stays queryable by id, only
// the active flag flips and the departure date is stamped. Services, family
// and children records are left untouched.
func (h *MemberHandler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	matched, err := h.Store.Update(c.Request.Context(), store.Members, bson.M{"original_id": id}, bson.M{"$set": bson.M{
		"is_active":      false,
		"departure_date": time.Now().UTC().Format(time.RFC3339),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not deactivate member"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	slog.Info("member deactivated", "original_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Member deactivated"})
}

// UploadPhoto stores the image and points the member record at it. The file
// write and the record update are two separate steps with no rollback; a
// crash in between leaves an orphaned file. Known and accepted.
func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	ctx := c.Request.Context()
	var member models.Member
	if err := h.Store.FindOne(ctx, store.Members, bson.M{"original_id": id}, nil, &member); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
		return
	}

	ext := "jpg"
	if i := strings.LastIndex(file.Filename, "."); i >= 0 && i < len(file.Filename)-1 {
		ext = file.Filename[i+1:]
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	filename := fmt.Sprintf("member_%d_%s.%s", id, suffix, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadsDir, filename)); err != nil {
		slog.Error("failed to save photo", "error", err, "member_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save file"})
		return
	}

	photoURL := "/uploads/" + filename
	if _, err := h.Store.Update(ctx, store.Members, bson.M{"original_id": id}, bson.M{"$set": bson.M{"photo_url": photoURL}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": photoURL})
}

// DeletePhoto removes the stored file (when present) and unsets the photo
// reference.
func (h *MemberHandler) DeletePhoto(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	ctx := c.Request.Context()
	var member models.Member
	if err := h.Store.FindOne(ctx, store.Members, bson.M{"original_id": id}, nil, &member); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	if member.PhotoURL != nil {
		filename := filepath.Base(*member.PhotoURL)
		if err := os.Remove(filepath.Join(h.UploadsDir, filename)); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove photo file", "error", err, "member_id", id)
		}
	}

	if _, err := h.Store.Update(ctx, store.Members, bson.M{"original_id": id}, bson.M{"$unset": bson.M{"photo_url": ""}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}

// asInt normalizes the numeric types the store's Distinct may hand back.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
