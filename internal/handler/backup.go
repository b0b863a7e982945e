package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"smart-billing/internal/models"
	"smart-billing/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler snapshots the four business tables to JSON files in
// the backup directory and restores from them.
type BackupHandler struct {
	DB        *gorm.DB
	BackupDir string
}

func NewBackupHandler(db *gorm.DB, backupDir string) *BackupHandler {
	return &BackupHandler{DB: db, BackupDir: backupDir}
}

// backupData is the on-disk snapshot content.
type backupData struct {
	Created   time.Time         `json:"created"`
	Customers []models.Customer `json:"customers"`
	Products  []models.Product  `json:"products"`
	Sales     []models.Sale     `json:"sales"`
	SaleItems []models.SaleItem `json:"sale_items"`
}

// CreateBackup writes a full snapshot file and registers it.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	var data backupData
	data.Created = time.Now()

	if err := h.DB.Order("id ASC").Find(&data.Customers).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query customers failed")
		return
	}
	if err := h.DB.Order("id ASC").Find(&data.Products).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query products failed")
		return
	}
	if err := h.DB.Order("id ASC").Find(&data.Sales).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query sales failed")
		return
	}
	if err := h.DB.Order("id ASC").Find(&data.SaleItems).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query sale items failed")
		return
	}

	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "encode backup failed")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create backup dir failed")
		return
	}

	// uuid keeps file names unique even within one second
	fileName := fmt.Sprintf("backup-%s.json", uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, raw, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write backup file failed")
		return
	}

	info, _ := os.Stat(filePath)

	backup := models.Backup{
		FileName: fileName,
		FilePath: filePath,
		Size:     info.Size(),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save backup record failed")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":         backup.ID,
			"file_name":  backup.FileName,
			"size":       backup.Size,
			"created_at": backup.CreatedAt,
		},
	})
}

// ListBackups lists registered snapshots, newest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query backups failed")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":         b.ID,
			"file_name":  b.FileName,
			"size":       b.Size,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{"items": items})
}

func (h *BackupHandler) findBackup(c *gin.Context) (*models.Backup, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		return nil, false
	}

	var backup models.Backup
	if err := h.DB.First(&backup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query backup failed")
		}
		return nil, false
	}
	return &backup, true
}

// DownloadBackup serves the snapshot file.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup removes the snapshot file and its record.
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	// file first, then record
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete backup record failed")
		return
	}

	util.Success(c, util.Response{"message": "backup deleted"})
}

// RestoreBackup replaces the four business tables with the snapshot
// contents, all inside one transaction.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	raw, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read backup file failed")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "parse backup data failed")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		// children first so foreign keys stay satisfied
		if err := tx.Where("1 = 1").Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Sale{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
			return err
		}

		for i := range data.Customers {
			if err := tx.Create(&data.Customers[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Products {
			if err := tx.Create(&data.Products[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Sales {
			sale := data.Sales[i]
			sale.Customer = models.Customer{}
			sale.Items = nil
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
		}
		for i := range data.SaleItems {
			item := data.SaleItems[i]
			item.Product = models.Product{}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore failed")
		return
	}

	util.Success(c, util.Response{
		"message":   "restore complete",
		"customers": len(data.Customers),
		"products":  len(data.Products),
		"sales":     len(data.Sales),
	})
}
