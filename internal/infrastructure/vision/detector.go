//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sort"

	"gocv.io/x/gocv"

	"weld-score/internal/domain/entity"
)

// GoCVDetector ищет валики наплавки на фото панели
type GoCVDetector struct {
	MinAreaRatio   float64 // минимальная площадь валика относительно кадра
	MinElongation  float64 // валик вытянут поперёк шва минимум во столько раз
	MaxSide        int
	MinImageSide   int
	BrightnessCut  float32 // порог яркости наплавки после выравнивания гистограммы
	MaxBeadsPerRow int
}

// NewGoCVDetector создаёт детектор с порогами для фото панели сверху.
func NewGoCVDetector() *GoCVDetector {
	return &GoCVDetector{
		MinAreaRatio:   0.0005,
		MinElongation:  1.2,
		MaxSide:        1024,
		MinImageSide:   400,
		BrightnessCut:  170,
		MaxBeadsPerRow: 200,
	}
}

// DetectBeads находит контуры валиков и возвращает их рамки слева направо.
func (d *GoCVDetector) DetectBeads(ctx context.Context, imageData []byte) (*entity.BeadInspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Cols() < d.MinImageSide || mat.Rows() < d.MinImageSide {
		return nil, fmt.Errorf("image is too small (%dx%d)", mat.Cols(), mat.Rows())
	}

	// Приводим изображение к стандартному размеру для стабильных порогов.
	if mat.Cols() > d.MaxSide || mat.Rows() > d.MaxSide {
		scale := float64(d.MaxSide) / float64(max(mat.Cols(), mat.Rows()))
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(int(float64(mat.Cols())*scale), int(float64(mat.Rows())*scale)), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(gray, &equalized)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(equalized, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	// Наплавка блестит ярче основного металла.
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(blur, &mask, d.BrightnessCut, 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	minArea := int(float64(mat.Cols()*mat.Rows()) * d.MinAreaRatio)
	beads := make([]entity.BeadArea, 0, contours.Size())
	for i := 0; i < contours.Size() && len(beads) < d.MaxBeadsPerRow; i++ {
		rect := gocv.BoundingRect(contours.At(i))
		area := rect.Dx() * rect.Dy()
		if area < minArea || rect.Dx() == 0 {
			continue
		}
		if float64(rect.Dy())/float64(rect.Dx()) < d.MinElongation {
			continue
		}
		beads = append(beads, entity.BeadArea{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
			Area:   area,
		})
	}
	sort.Slice(beads, func(i, j int) bool { return beads[i].X < beads[j].X })

	return &entity.BeadInspection{
		ImageWidth:  mat.Cols(),
		ImageHeight: mat.Rows(),
		Beads:       beads,
	}, nil
}

// HighlightBeads рисует рамки вокруг валиков и возвращает новую картинку.
func (d *GoCVDetector) HighlightBeads(imageData []byte, result *entity.BeadInspection) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	// Рамки найдены на уменьшенной копии, возвращаем их к исходному размеру.
	sx := float64(mat.Cols()) / float64(max(result.ImageWidth, 1))
	sy := float64(mat.Rows()) / float64(max(result.ImageHeight, 1))

	green := color.RGBA{G: 255, A: 255}
	for _, b := range result.Beads {
		rect := image.Rect(
			int(float64(b.X)*sx), int(float64(b.Y)*sy),
			int(float64(b.X+b.Width)*sx), int(float64(b.Y+b.Height)*sy),
		)
		gocv.Rectangle(&mat, rect, green, 2)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}
