package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/models"
)

// prefixCommitter stands in for the media host's staging commit.
type prefixCommitter struct{}

func (prefixCommitter) Commit(_ context.Context, rawURL, owner string) (string, error) {
	return strings.Replace(rawURL, "/staging/", "/seller-docs/"+owner+"/", 1), nil
}

func applyRequest() dto.ApplyRequest {
	return dto.ApplyRequest{
		ShopName:  "Utkal Handlooms",
		GSTNumber: "21AAAAA0000A1Z5",
		Address: dto.AddressInput{
			District: "Cuttack",
			Street:   "Chandni Chowk",
			City:     "Cuttack",
			State:    "Odisha",
			ZipCode:  "753001",
			Country:  "India",
		},
		Docs: dto.DocURLs{
			PANCardFront:     "https://cdn.example.com/staging/pan-front.jpg",
			PANCardBack:      "https://cdn.example.com/staging/pan-back.jpg",
			AadhaarCardFront: "https://cdn.example.com/staging/aadhaar-front.jpg",
			AadhaarCardBack:  "https://cdn.example.com/staging/aadhaar-back.jpg",
		},
	}
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewSellerService(db, nil, nil)
	user := createUser(t, db, "applicant@example.com")

	noShop := applyRequest()
	noShop.ShopName = "  "
	if _, err := svc.Submit(context.Background(), user.ID, noShop); !IsValidation(err) {
		t.Fatalf("expected validation error for blank shop name, got %v", err)
	}

	noGST := applyRequest()
	noGST.GSTNumber = ""
	if _, err := svc.Submit(context.Background(), user.ID, noGST); !IsValidation(err) {
		t.Fatalf("expected validation error for blank GST number, got %v", err)
	}

	noDoc := applyRequest()
	noDoc.Docs.AadhaarCardBack = ""
	if _, err := svc.Submit(context.Background(), user.ID, noDoc); !IsValidation(err) {
		t.Fatalf("expected validation error for missing document, got %v", err)
	}

	// Nothing may be persisted by a rejected submission.
	var count int64
	db.Model(&models.SellerProfile{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no profile rows after failed submissions, got %d", count)
	}
}

func TestSubmitCreatesApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewSellerService(db, prefixCommitter{}, nil)
	user := createUser(t, db, "applicant@example.com")

	profile, err := svc.Submit(context.Background(), user.ID, applyRequest())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !profile.IsRequestedForSeller || profile.IsApprovedByAdmin {
		t.Fatalf("expected requested=true approved=false, got %+v", profile)
	}
	if profile.Status != models.SellerStatusPending {
		t.Fatalf("expected pending status, got %s", profile.Status)
	}

	stored, err := svc.GetByUser(user.ID)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if stored.Address == nil || stored.Address.City != "Cuttack" {
		t.Fatalf("expected shop address to be stored")
	}
	if stored.Docs == nil || stored.Docs.PANCardFront == nil {
		t.Fatalf("expected documents to be stored")
	}
	committed := "https://cdn.example.com/seller-docs/" + user.ID.String() + "/pan-front.jpg"
	if *stored.Docs.PANCardFront != committed {
		t.Fatalf("expected committed doc URL %q, got %q", committed, *stored.Docs.PANCardFront)
	}

	var events []models.SellerStatusEvent
	db.Where("seller_profile_id = ?", profile.ID).Find(&events)
	if len(events) != 1 || events[0].ToStatus != models.SellerStatusPending {
		t.Fatalf("expected one pending status event, got %+v", events)
	}
}

func TestResubmitAfterRejectionReplaces(t *testing.T) {
	db := newTestDB(t)
	svc := NewSellerService(db, nil, nil)
	user := createUser(t, db, "applicant@example.com")
	admin := createUser(t, db, "admin@example.com")

	first, err := svc.Submit(context.Background(), user.ID, applyRequest())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if err := svc.Reject(context.Background(), first.ID, admin.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	second := applyRequest()
	second.ShopName = "Utkal Handlooms Revived"
	resubmitted, err := svc.Submit(context.Background(), user.ID, second)
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resubmitted.ID != first.ID {
		t.Fatalf("resubmission must reuse the profile row")
	}
	if resubmitted.Status != models.SellerStatusPending {
		t.Fatalf("expected pending after resubmit, got %s", resubmitted.Status)
	}
	if resubmitted.ShopName != "Utkal Handlooms Revived" {
		t.Fatalf("expected shop name replaced, got %s", resubmitted.ShopName)
	}

	// One address and one docs row, replaced wholesale.
	var addrCount, docsCount int64
	db.Model(&models.SellerAddress{}).Where("seller_profile_id = ?", first.ID).Count(&addrCount)
	db.Model(&models.SellerDocs{}).Where("seller_profile_id = ?", first.ID).Count(&docsCount)
	if addrCount != 1 || docsCount != 1 {
		t.Fatalf("expected 1 address and 1 docs row, got %d/%d", addrCount, docsCount)
	}
}

func TestApproveAndReject(t *testing.T) {
	db := newTestDB(t)
	svc := NewSellerService(db, nil, nil)
	user := createUser(t, db, "applicant@example.com")
	admin := createUser(t, db, "admin@example.com")

	profile, err := svc.Submit(context.Background(), user.ID, applyRequest())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := svc.Approve(context.Background(), profile.ID, admin.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	approved, _ := svc.GetByUser(user.ID)
	if !approved.IsApprovedByAdmin || approved.Status != models.SellerStatusApproved {
		t.Fatalf("expected approved state, got %+v", approved)
	}

	if err := svc.Reject(context.Background(), profile.ID, admin.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	rejected, _ := svc.GetByUser(user.ID)
	if rejected.IsApprovedByAdmin || rejected.IsRequestedForSeller {
		t.Fatalf("expected both flags cleared after rejection, got %+v", rejected)
	}
	if rejected.Status != models.SellerStatusRejected {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}

	var events []models.SellerStatusEvent
	db.Where("seller_profile_id = ?", profile.ID).Order("created_at ASC").Find(&events)
	if len(events) != 3 {
		t.Fatalf("expected 3 audit events (submit, approve, reject), got %d", len(events))
	}

	if err := svc.Approve(context.Background(), uuid.New(), admin.ID); !errors.Is(err, ErrSellerNotFound) {
		t.Fatalf("expected ErrSellerNotFound, got %v", err)
	}
}

func TestDerivedStatus(t *testing.T) {
	cases := []struct {
		name    string
		profile models.SellerProfile
		want    string
	}{
		{"pending", models.SellerProfile{IsRequestedForSeller: true, Status: models.SellerStatusPending}, "pending"},
		{"approved", models.SellerProfile{IsApprovedByAdmin: true, Status: models.SellerStatusApproved}, "approved"},
		{"rejected", models.SellerProfile{Status: models.SellerStatusRejected}, "rejected"},
		{"unsubmitted", models.SellerProfile{Status: models.SellerStatusUnsubmitted}, "unsubmitted"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DerivedStatus(&tc.profile); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
