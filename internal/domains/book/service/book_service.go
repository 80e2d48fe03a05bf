package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/logger"
)

type bookService struct {
	repo      book.Repository
	loans     book.LoanChecker
	covers    book.CoverStorage
	processor *storage.ImageProcessor
}

func NewBookService(repo book.Repository, loans book.LoanChecker, covers book.CoverStorage) book.Service {
	return &bookService{
		repo:      repo,
		loans:     loans,
		covers:    covers,
		processor: storage.NewImageProcessor(),
	}
}

// Create thêm sách mới - available khởi tạo bằng quantity (chưa ai mượn)
func (s *bookService) Create(ctx context.Context, req book.CreateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	b := &book.Book{
		ID:         uuid.New(),
		Title:      req.Title,
		Author:     req.Author,
		CategoryID: req.CategoryID,
		Quantity:   req.Quantity,
		Available:  req.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if len(req.Image) > 0 {
		key, url, err := s.uploadCover(ctx, b.ID, req.Image)
		if err != nil {
			return nil, err
		}
		b.ImageKey = &key
		b.ImageURL = &url
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return b, nil
}

// Update sửa catalog entry - quantity change điều chỉnh available theo
// cùng delta rồi clamp vào [0, quantity]; ảnh mới thay thế ảnh cũ
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req book.UpdateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Title = req.Title
	b.Author = req.Author
	b.CategoryID = req.CategoryID
	b.ApplyQuantityChange(req.Quantity)

	if len(req.Image) > 0 {
		// Xóa ảnh cũ trước khi upload ảnh mới
		if b.ImageKey != nil {
			if err := s.covers.DeleteByPrefix(ctx, coverPrefix(b.ID)); err != nil {
				logger.Error("failed to delete old cover", err)
			}
		}

		key, url, err := s.uploadCover(ctx, b.ID, req.Image)
		if err != nil {
			return nil, err
		}
		b.ImageKey = &key
		b.ImageURL = &url
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete xóa sách khỏi catalog
// Reject nếu còn loan chưa trả; release ảnh bìa trước khi xóa record
func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hasOpen, err := s.loans.HasOpenLoanForBook(ctx, id)
	if err != nil {
		return fmt.Errorf("check open loans: %w", err)
	}
	if hasOpen {
		return book.ErrBookOnLoan
	}

	if b.ImageKey != nil {
		if err := s.covers.DeleteByPrefix(ctx, coverPrefix(id)); err != nil {
			return fmt.Errorf("delete cover images: %w", err)
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *bookService) Search(ctx context.Context, filter book.SearchFilter) ([]book.Book, error) {
	return s.repo.Search(ctx, filter)
}

func (s *bookService) ListLowStock(ctx context.Context) ([]book.Book, error) {
	return s.repo.ListLowStock(ctx, book.LowStockThreshold)
}

// uploadCover validate, resize và upload ảnh bìa
// Lưu 2 variants: cover (600px) và thumbnail (300px); URL trả về là cover
func (s *bookService) uploadCover(ctx context.Context, bookID uuid.UUID, data []byte) (key, url string, err error) {
	if err := s.processor.ValidateImage(data); err != nil {
		return "", "", fmt.Errorf("%w: %v", book.ErrInvalidImage, err)
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", book.ErrInvalidImage, err)
	}

	var coverURL string
	for name, imgData := range variants {
		variantKey := fmt.Sprintf("%s%s.jpg", coverPrefix(bookID), name)
		uploadedURL, err := s.covers.Upload(ctx, variantKey, imgData, "image/jpeg")
		if err != nil {
			return "", "", fmt.Errorf("upload cover %s: %w", name, err)
		}
		if name == "cover" {
			key = variantKey
			coverURL = uploadedURL
		}
	}

	return key, coverURL, nil
}

func coverPrefix(bookID uuid.UUID) string {
	return fmt.Sprintf("books/%s/", bookID)
}
