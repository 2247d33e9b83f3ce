package receiving

import (
	"context"

	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén
// remoto con los repositorios que necesita una recepción: el registro, el
// vínculo del QR y la creación del material aterrizan juntos o no aterrizan.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		qrRepo repository.QRCodeRepository,
		receivingRepo repository.ReceivingRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}

// PhotoUploader sube una foto al almacenamiento de objetos y devuelve su
// ruta. Es best-effort: los fallos individuales se registran en el log y
// no hacen fallar la recepción.
type PhotoUploader interface {
	Upload(ctx context.Context, data []byte, objectKey string) (string, error)
}
