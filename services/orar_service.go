package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	config "github.com/fiesc/exam_planner/configs"
	"github.com/fiesc/exam_planner/models"
	"github.com/fiesc/exam_planner/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultOrarBaseURL = "https://orar.usv.ro/orar/vizualizare/data"

// OrarClient pulls reference data (teachers, rooms, groups) from the public
// university timetable API. The planner never writes back to it.
type OrarClient struct {
	BaseURL string
	client  *http.Client
}

func NewOrarClient() *OrarClient {
	base := config.Config("ORAR_BASE_URL")
	if base == "" {
		base = defaultOrarBaseURL
	}
	return &OrarClient{
		BaseURL: base,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type orarTeacher struct {
	LastName   string `json:"nume"`
	FirstName  string `json:"prenume"`
	Email      string `json:"email"`
	Department string `json:"departament"`
}

type orarRoom struct {
	Building  string `json:"corp"`
	ShortName string `json:"sala"`
	Capacity  int    `json:"capacitate"`
	Computers int    `json:"calculatoare"`
}

type orarSubgroup struct {
	Group string `json:"grupa"`
}

func (c *OrarClient) fetch(path string, out any) error {
	resp, err := c.client.Get(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("orar request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("orar returned %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *OrarClient) FetchTeachers() ([]orarTeacher, error) {
	var teachers []orarTeacher
	err := c.fetch("/cadre.php?json", &teachers)
	return teachers, err
}

func (c *OrarClient) FetchRooms() ([]orarRoom, error) {
	var rooms []orarRoom
	err := c.fetch("/sali.php?json", &rooms)
	return rooms, err
}

func (c *OrarClient) FetchSubgroups() ([]orarSubgroup, error) {
	var subgroups []orarSubgroup
	err := c.fetch("/subgrupe.php?json", &subgroups)
	return subgroups, err
}

// SyncReport counts what a sync run touched.
type SyncReport struct {
	Teachers int `json:"teachers"`
	Rooms    int `json:"rooms"`
	Groups   int `json:"groups"`
}

type OrarSyncService struct {
	db     *gorm.DB
	client *OrarClient
}

func NewOrarSyncService(db *gorm.DB, client *OrarClient) *OrarSyncService {
	return &OrarSyncService{db: db, client: client}
}

// SyncAll upserts teachers, rooms and groups from the timetable API. Each
// entity type syncs independently; a failure in one does not abort the rest.
func (s *OrarSyncService) SyncAll() SyncReport {
	report := SyncReport{}
	report.Teachers = s.syncTeachers()
	report.Rooms = s.syncRooms()
	report.Groups = s.syncGroups()
	return report
}

func (s *OrarSyncService) syncTeachers() int {
	data, err := s.client.FetchTeachers()
	if err != nil {
		log.Printf("🔥 Failed to fetch teachers from orar: %v", err)
		return 0
	}

	count := 0
	for _, t := range data {
		if t.Email == "" {
			continue
		}
		email := t.Email + "@usm.ro"

		var teacher models.Teacher
		err := s.db.Where("email = ?", email).First(&teacher).Error
		switch {
		case err == nil:
			teacher.FirstName = t.FirstName
			teacher.LastName = t.LastName
			teacher.Department = t.Department
			if err := s.db.Save(&teacher).Error; err != nil {
				log.Printf("🔥 Failed to update teacher %s: %v", email, err)
				continue
			}
		case err == gorm.ErrRecordNotFound:
			teacher = models.Teacher{
				FirstName:  t.FirstName,
				LastName:   t.LastName,
				Email:      email,
				Department: t.Department,
			}
			if err := s.db.Create(&teacher).Error; err != nil {
				log.Printf("🔥 Failed to create teacher %s: %v", email, err)
				continue
			}
			s.ensureTeacherAccount(&teacher)
		default:
			log.Printf("🔥 Failed to look up teacher %s: %v", email, err)
			continue
		}
		count++
	}
	return count
}

// ensureTeacherAccount gives a freshly synced teacher a CD login with a
// temporary password.
func (s *OrarSyncService) ensureTeacherAccount(teacher *models.Teacher) {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", teacher.Email).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(utils.GenerateTemporaryPassword()), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("🔥 Failed to hash temporary password for %s: %v", teacher.Email, err)
		return
	}

	user := models.User{
		FirstName: teacher.FirstName,
		LastName:  teacher.LastName,
		Email:     teacher.Email,
		Password:  string(hashed),
		Role:      models.RoleTeacher,
		TeacherID: &teacher.ID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		log.Printf("🔥 Failed to create account for teacher %s: %v", teacher.Email, err)
	}
}

func (s *OrarSyncService) syncRooms() int {
	data, err := s.client.FetchRooms()
	if err != nil {
		log.Printf("🔥 Failed to fetch rooms from orar: %v", err)
		return 0
	}

	count := 0
	for _, r := range data {
		if r.ShortName == "" {
			continue
		}

		var room models.Room
		err := s.db.Where("building = ? AND short_name = ?", r.Building, r.ShortName).First(&room).Error
		switch {
		case err == nil:
			room.Name = r.Building + r.ShortName
			room.Capacity = r.Capacity
			room.Computers = r.Computers
			if err := s.db.Save(&room).Error; err != nil {
				continue
			}
		case err == gorm.ErrRecordNotFound:
			room = models.Room{
				Name:      r.Building + r.ShortName,
				ShortName: r.ShortName,
				Building:  r.Building,
				Capacity:  r.Capacity,
				Computers: r.Computers,
			}
			if err := s.db.Create(&room).Error; err != nil {
				continue
			}
		default:
			continue
		}
		count++
	}
	return count
}

func (s *OrarSyncService) syncGroups() int {
	data, err := s.client.FetchSubgroups()
	if err != nil {
		log.Printf("🔥 Failed to fetch subgroups from orar: %v", err)
		return 0
	}

	count := 0
	for _, sg := range data {
		name := sg.Group
		if name == "" {
			continue
		}

		// Group names encode year and specialization, e.g. 3A4 -> year 3,
		// specialization A.
		studyYear := 0
		if name[0] >= '0' && name[0] <= '9' {
			studyYear = int(name[0] - '0')
		}
		specialization := ""
		if len(name) > 1 {
			specialization = string(name[1])
		}

		var group models.Group
		err := s.db.Where("name = ?", name).First(&group).Error
		switch {
		case err == nil:
			group.StudyYear = studyYear
			group.Specialization = specialization
			if err := s.db.Save(&group).Error; err != nil {
				continue
			}
		case err == gorm.ErrRecordNotFound:
			group = models.Group{
				Name:           name,
				StudyYear:      studyYear,
				Specialization: specialization,
			}
			if err := s.db.Create(&group).Error; err != nil {
				continue
			}
		default:
			continue
		}
		count++
	}
	return count
}
