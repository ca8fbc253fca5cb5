package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/fiesc/exam_planner/configs"
	"github.com/gofiber/fiber/v2"
)

const defaultTemplateFolder = "exam_planner_templates"
const templateUploadTag = "schedule-template"

// templateUploadFolder resolves the Cloudinary folder for secretariat
// spreadsheet templates, falling back to the project default.
func templateUploadFolder() string {
	if folder := config.Config("CLOUDINARY_TEMPLATE_FOLDER"); folder != "" {
		return folder
	}
	return defaultTemplateFolder
}

// GenerateUploadSignature creates a secure signature so the secretariat
// frontend can upload spreadsheet templates directly to Cloudinary. The
// signed params pin the template folder and tag, so a leaked signature
// cannot be replayed to upload into another part of the media library.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize Cloudinary"})
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse Cloudinary URL"})
	}
	secret, _ := parsedURL.User.Password()

	folder := templateUploadFolder()
	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: folder,
		Tags:   api.CldAPIArray{templateUploadTag},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare signature params"})
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign upload params"})
	}

	return c.JSON(fiber.Map{
		"signature":     signature,
		"timestamp":     timestamp,
		"api_key":       cld.Config.Cloud.APIKey,
		"folder":        folder,
		"tags":          templateUploadTag,
		"resource_type": "raw",
	})
}
